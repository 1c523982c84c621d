package gochap

import (
	"crypto/subtle"
	"fmt"

	"github.com/vitalvas/gochap/pkg/digest"
)

// Respond computes the RFC 1994 response to a single challenge:
// digest(identifier ++ secret ++ challenge). It drives one full session
// lifecycle and returns a copy of the response, so the result stays valid
// after the session is released.
func Respond(alg digest.Algorithm, identifier byte, secret, challenge []byte) ([]byte, error) {
	if len(challenge) < MinChallengeLength || len(challenge) > MaxChallengeLength {
		return nil, fmt.Errorf("challenge length must be between %d and %d bytes, got %d", MinChallengeLength, MaxChallengeLength, len(challenge))
	}

	session, err := NewSession(alg)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	session.Update([]byte{identifier})
	session.Update(secret)
	session.Update(challenge)

	response := make([]byte, session.ResponseLength())
	copy(response, session.Respond())

	return response, nil
}

// Verify reports whether response matches the expected RFC 1994 response
// for the given identifier, secret and challenge. The comparison is
// constant-time; any computation failure or length mismatch verifies false.
func Verify(alg digest.Algorithm, identifier byte, secret, challenge, response []byte) bool {
	if alg == nil || len(response) != alg.Size() {
		return false
	}

	expected, err := Respond(alg, identifier, secret, challenge)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(expected, response) == 1
}
