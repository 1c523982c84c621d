package digest

import (
	"crypto/md5"
	"crypto/rand"
	"hash"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinAlgorithms(t *testing.T) {
	tests := []struct {
		name         string
		algorithm    Algorithm
		expectedName string
		expectedSize int
	}{
		{"md5", MD5, "md5", 16},
		{"sha1", SHA1, "sha1", 20},
		{"sha256", SHA256, "sha256", 32},
		{"sha512", SHA512, "sha512", 64},
		{"sha3-256", SHA3256, "sha3-256", 32},
		{"blake2b-256", BLAKE2b256, "blake2b-256", 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedName, tt.algorithm.Name())
			assert.Equal(t, tt.expectedSize, tt.algorithm.Size())

			state, err := tt.algorithm.New()
			require.NoError(t, err)
			require.NotNil(t, state)

			assert.Equal(t, tt.expectedSize, state.Size())
			assert.Len(t, state.Sum(nil), tt.expectedSize)
		})
	}
}

func TestWorkingStateChunkInvariance(t *testing.T) {
	message := make([]byte, 1024)
	_, err := rand.Read(message)
	require.NoError(t, err)

	for _, alg := range []Algorithm{MD5, SHA1, SHA256, SHA512, SHA3256, BLAKE2b256} {
		t.Run(alg.Name(), func(t *testing.T) {
			whole, err := alg.New()
			require.NoError(t, err)

			_, err = whole.Write(message)
			require.NoError(t, err)

			chunked, err := alg.New()
			require.NoError(t, err)

			for offset := 0; offset < len(message); offset += 100 {
				end := offset + 100
				if end > len(message) {
					end = len(message)
				}

				_, err = chunked.Write(message[offset:end])
				require.NoError(t, err)
			}

			assert.Equal(t, whole.Sum(nil), chunked.Sum(nil))
		})
	}
}

func TestWorkingStateSumNonDestructive(t *testing.T) {
	state, err := SHA256.New()
	require.NoError(t, err)

	_, err = state.Write([]byte("identifier and secret and challenge"))
	require.NoError(t, err)

	first := state.Sum(nil)
	second := state.Sum(nil)

	assert.Equal(t, first, second)
}

func TestNewAlgorithm(t *testing.T) {
	validConstruct := func() (hash.Hash, error) { return md5.New(), nil }

	tests := []struct {
		name        string
		algName     string
		size        int
		construct   func() (hash.Hash, error)
		expectError bool
	}{
		{"valid definition", "custom-md5", 16, validConstruct, false},
		{"empty name", "", 16, validConstruct, true},
		{"zero size", "custom", 0, validConstruct, true},
		{"negative size", "custom", -4, validConstruct, true},
		{"nil constructor", "custom", 16, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alg, err := NewAlgorithm(tt.algName, tt.size, tt.construct)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, alg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, alg)

			assert.Equal(t, tt.algName, alg.Name())
			assert.Equal(t, tt.size, alg.Size())

			state, err := alg.New()
			require.NoError(t, err)
			assert.NotNil(t, state)
		})
	}
}

func BenchmarkMD5WorkingState(b *testing.B) {
	for i := 0; i < b.N; i++ {
		state, err := MD5.New()
		if err != nil {
			b.Fatal(err)
		}

		state.Write([]byte{0x01})
		state.Write([]byte("secret"))
		state.Write([]byte("challenge"))
		state.Sum(nil)
	}
}
