package gochap

import (
	"errors"
	"fmt"
	"hash"

	"github.com/vitalvas/gochap/pkg/digest"
	"github.com/vitalvas/gochap/pkg/log"
)

// Session computes a single CHAP response. It binds one digest algorithm at
// creation, accumulates the identifier, secret and challenge octets in any
// chunking, and finalises them into a response of the algorithm's fixed
// output size. Usable sessions come from NewSession; the zero value is
// inert and every operation on it is a safe no-op.
//
// A Session is not safe for concurrent use. Callers that share a session
// across goroutines must provide their own synchronisation; the usual
// pattern is one session per authentication exchange.
type Session struct {
	alg      digest.Algorithm
	state    hash.Hash
	response []byte
	final    bool
	logger   log.Logger
}

// NewSession creates a session bound to the given digest algorithm and
// allocates its working state and response buffer. On failure no session is
// created and the caller may retry, fall back to another algorithm, or fail
// the authentication attempt.
func NewSession(alg digest.Algorithm, opts ...SessionOption) (*Session, error) {
	if alg == nil {
		return nil, ErrNilAlgorithm
	}

	session := &Session{
		alg:    alg,
		logger: log.Nop(),
	}

	for _, opt := range opts {
		opt(session)
	}

	state, err := alg.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialise %s working state: %w", alg.Name(), err)
	}

	if state == nil {
		return nil, fmt.Errorf("failed to initialise %s working state: constructor returned no state", alg.Name())
	}

	if state.Size() != alg.Size() {
		return nil, fmt.Errorf("algorithm %s declares %d-byte output but its state produces %d bytes", alg.Name(), alg.Size(), state.Size())
	}

	session.state = state
	session.response = make([]byte, 0, alg.Size())

	session.logger.Debugf("chap: session initialised with %s digest", alg.Name())

	return session, nil
}

// Update folds data into the working state. Any chunking of the same octets
// produces the same response; zero-length input is a no-op. Calling Update
// after Respond resumes accumulation, and the previously returned response
// is no longer meaningful until Respond is called again.
//
// On a released or never-initialised session Update does nothing beyond
// logging a warning.
func (s *Session) Update(data []byte) {
	if s.state == nil {
		s.loggerOrNop().Warn("chap: update on uninitialised session ignored")
		return
	}

	// hash.Hash.Write never returns an error.
	s.state.Write(data)
	s.final = false
}

// Write implements io.Writer over Update so a session can sit behind
// io.Copy or io.MultiWriter. It returns ErrSessionReleased on a released
// or never-initialised session.
func (s *Session) Write(p []byte) (int, error) {
	if s.state == nil {
		return 0, ErrSessionReleased
	}

	s.Update(p)

	return len(p), nil
}

// Respond finalises the accumulated octets into the session's response
// buffer and returns it. The result always has length ResponseLength.
// Finalisation does not disturb the accumulator: calling Respond again
// without an intervening Update returns identical bytes, and an Update
// after Respond extends the original input rather than starting over.
//
// The returned slice is owned by the session and is zeroed by Close; copy
// it if it must outlive the session. On a released or never-initialised
// session Respond returns nil and logs a warning.
func (s *Session) Respond() []byte {
	if s.state == nil {
		s.loggerOrNop().Warn("chap: respond on uninitialised session ignored")
		return nil
	}

	s.loggerOrNop().Debugf("chap: responding with %s digest", s.alg.Name())

	s.response = s.state.Sum(s.response[:0])
	s.final = true

	return s.response
}

// Response returns the response bytes when the last operation on the
// session was a successful Respond, and nil otherwise. It never computes
// anything; it only exposes what Respond produced.
func (s *Session) Response() []byte {
	if !s.final {
		return nil
	}

	return s.response
}

// ResponseLength returns the bound algorithm's fixed output size in bytes.
// It is constant from creation until release, and zero afterwards.
func (s *Session) ResponseLength() int {
	if s.alg == nil {
		return 0
	}

	return s.alg.Size()
}

// Algorithm returns the digest algorithm the session was created with, or
// nil after release.
func (s *Session) Algorithm() digest.Algorithm {
	return s.alg
}

// Close releases the session: the response bytes are zeroed and the
// algorithm binding and working state are dropped. Close is idempotent and
// safe on a nil session. A closed session stays inert; computing another
// response means creating a new session.
func (s *Session) Close() {
	if s == nil || s.alg == nil {
		return
	}

	for i := range s.response {
		s.response[i] = 0
	}

	s.response = nil
	s.state = nil
	s.alg = nil
	s.final = false

	s.loggerOrNop().Debug("chap: session released")
}

// loggerOrNop returns the session logger, or a nop logger on sessions that
// never passed through NewSession and so carry none.
func (s *Session) loggerOrNop() log.Logger {
	if s.logger == nil {
		return log.Nop()
	}

	return s.logger
}

var (
	// ErrNilAlgorithm indicates a session was requested without a digest algorithm
	ErrNilAlgorithm = errors.New("digest algorithm is nil")
	// ErrSessionReleased indicates a write to a session after Close
	ErrSessionReleased = errors.New("session is released")
)
