package gochap

import "github.com/vitalvas/gochap/pkg/log"

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger for lifecycle traces and misuse warnings.
// Sessions are silent by default.
func WithLogger(logger log.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
