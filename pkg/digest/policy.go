package digest

// Policy restricts which digest algorithms a deployment may use. Policies
// are typically loaded from YAML or JSON files via FileSource and applied
// to a registry with WithPolicy.
type Policy struct {
	// Default names the algorithm to select when the caller does not ask
	// for one explicitly.
	Default string `yaml:"default,omitempty" json:"default,omitempty"`

	// Allow lists the permitted algorithm names. An empty list permits
	// every registered algorithm.
	Allow []string `yaml:"allow,omitempty" json:"allow,omitempty"`
}

// Permits reports whether the policy allows the named algorithm.
// Name matching is case-insensitive.
func (p *Policy) Permits(name string) bool {
	if p == nil || len(p.Allow) == 0 {
		return true
	}

	normalized := normalizeName(name)
	for _, allowed := range p.Allow {
		if normalizeName(allowed) == normalized {
			return true
		}
	}

	return false
}
