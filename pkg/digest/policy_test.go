package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyPermits(t *testing.T) {
	tests := []struct {
		name     string
		policy   *Policy
		alg      string
		expected bool
	}{
		{"nil policy permits all", nil, "md5", true},
		{"empty allow list permits all", &Policy{}, "sha512", true},
		{"listed algorithm", &Policy{Allow: []string{"md5", "sha256"}}, "sha256", true},
		{"unlisted algorithm", &Policy{Allow: []string{"md5"}}, "sha256", false},
		{"case-insensitive match", &Policy{Allow: []string{"MD5"}}, "md5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.policy.Permits(tt.alg))
		})
	}
}
