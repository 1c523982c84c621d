package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Algorithm describes a digest primitive usable for CHAP response
// computation. An algorithm has a fixed output size known before any call
// and allocates an independent working state per computation.
//
// The working state follows the hash.Hash contract: Write folds data into
// the state and is chunk-invariant, Sum appends the current digest without
// resetting the accumulated input, and Reset returns the state to its
// freshly initialised form.
type Algorithm interface {
	// Name returns the canonical algorithm name (lowercase, e.g. "md5").
	Name() string

	// Size returns the digest output size in bytes.
	Size() int

	// New allocates and initialises a working state for one computation.
	New() (hash.Hash, error)
}

// builtin implements Algorithm for the digests shipped with the library.
type builtin struct {
	name      string
	size      int
	construct func() (hash.Hash, error)
}

func (b *builtin) Name() string { return b.name }

func (b *builtin) Size() int { return b.size }

func (b *builtin) New() (hash.Hash, error) { return b.construct() }

// Digest algorithms shipped with the library. MD5 is the mandatory CHAP
// digest per RFC 1994 Section 4.1; the remaining algorithms cover
// deployments that refuse MD5.
var (
	// MD5 is the mandatory CHAP digest per RFC 1994 (16-byte response).
	MD5 Algorithm = &builtin{
		name:      "md5",
		size:      md5.Size,
		construct: func() (hash.Hash, error) { return md5.New(), nil },
	}

	// SHA1 produces 20-byte responses.
	SHA1 Algorithm = &builtin{
		name:      "sha1",
		size:      sha1.Size,
		construct: func() (hash.Hash, error) { return sha1.New(), nil },
	}

	// SHA256 produces 32-byte responses (FIPS 180-4).
	SHA256 Algorithm = &builtin{
		name:      "sha256",
		size:      sha256.Size,
		construct: func() (hash.Hash, error) { return sha256.New(), nil },
	}

	// SHA512 produces 64-byte responses (FIPS 180-4).
	SHA512 Algorithm = &builtin{
		name:      "sha512",
		size:      sha512.Size,
		construct: func() (hash.Hash, error) { return sha512.New(), nil },
	}

	// SHA3256 produces 32-byte responses (FIPS 202).
	SHA3256 Algorithm = &builtin{
		name:      "sha3-256",
		size:      32,
		construct: func() (hash.Hash, error) { return sha3.New256(), nil },
	}

	// BLAKE2b256 produces 32-byte responses (RFC 7693).
	BLAKE2b256 Algorithm = &builtin{
		name:      "blake2b-256",
		size:      blake2b.Size256,
		construct: func() (hash.Hash, error) { return blake2b.New256(nil) },
	}
)

// NewAlgorithm creates a custom Algorithm from a name, a fixed output size
// and a working-state constructor. It rejects empty names, non-positive
// sizes and nil constructors.
func NewAlgorithm(name string, size int, construct func() (hash.Hash, error)) (Algorithm, error) {
	if name == "" {
		return nil, fmt.Errorf("algorithm name is empty")
	}

	if size <= 0 {
		return nil, fmt.Errorf("algorithm %q: output size must be positive, got %d", name, size)
	}

	if construct == nil {
		return nil, fmt.Errorf("algorithm %q: constructor is nil", name)
	}

	return &builtin{name: name, size: size, construct: construct}, nil
}
