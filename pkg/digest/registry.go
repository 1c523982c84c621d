package digest

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry provides name-based lookup of digest algorithms. It is safe for
// concurrent use; lookups are case-insensitive.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Algorithm
}

// NewRegistry creates an empty algorithm registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Algorithm),
	}
}

// NewDefault creates a registry pre-loaded with every digest algorithm
// shipped with the library.
func NewDefault() (*Registry, error) {
	registry := NewRegistry()

	for _, alg := range []Algorithm{MD5, SHA1, SHA256, SHA512, SHA3256, BLAKE2b256} {
		if err := registry.Register(alg); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// Register adds an algorithm to the registry.
// Returns an error if the name is already taken by an earlier registration.
func (r *Registry) Register(alg Algorithm) error {
	if alg == nil {
		return fmt.Errorf("algorithm is nil")
	}

	name := normalizeName(alg.Name())
	if name == "" {
		return fmt.Errorf("algorithm name is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("duplicate algorithm name: %q already registered", name)
	}

	r.byName[name] = alg

	return nil
}

// Lookup finds an algorithm by name.
func (r *Registry) Lookup(name string) (Algorithm, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	alg, exists := r.byName[normalizeName(name)]

	return alg, exists
}

// Names returns the names of all registered algorithms in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// WithPolicy returns a new registry containing only the algorithms the
// policy permits. It returns an error if the policy references an
// algorithm that is not registered, which usually indicates a typo in a
// policy file.
func (r *Registry) WithPolicy(policy *Policy) (*Registry, error) {
	if policy == nil {
		return nil, fmt.Errorf("policy is nil")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range policy.Allow {
		if _, exists := r.byName[normalizeName(name)]; !exists {
			return nil, fmt.Errorf("policy allows unknown algorithm %q", name)
		}
	}

	if policy.Default != "" {
		if _, exists := r.byName[normalizeName(policy.Default)]; !exists {
			return nil, fmt.Errorf("policy default names unknown algorithm %q", policy.Default)
		}

		if !policy.Permits(policy.Default) {
			return nil, fmt.Errorf("policy default %q is not in the allow list", policy.Default)
		}
	}

	filtered := NewRegistry()
	for name, alg := range r.byName {
		if policy.Permits(name) {
			filtered.byName[name] = alg
		}
	}

	return filtered, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
