// Package tokenpkg creates and verifies signed, time-limited access tokens.
package tokenpkg

import (
	"fmt"
	"strings"
	"time"
)

// Supported signing algorithms.
const (
	AlgorithmHS256  = "HS256"
	AlgorithmPaseto = "paseto"
)

// Maker is an interface for managing tokens.
type Maker interface {
	// CreateToken creates a new token for a specific username and duration.
	CreateToken(username string, duration time.Duration) (string, *Payload, error)
	// VerifyToken checks if the token is valid or not.
	VerifyToken(token string) (*Payload, error)
}

// Option configures a Maker.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock makes the Maker read the current time from now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// New returns the Maker for the given algorithm.
func New(algorithm, secretKey string, opts ...Option) (Maker, error) {
	switch strings.ToLower(algorithm) {
	case "", strings.ToLower(AlgorithmHS256):
		return NewJWTMaker(secretKey, opts...)
	case AlgorithmPaseto:
		return NewPasetoMaker(secretKey, opts...)
	}

	return nil, fmt.Errorf("unsupported token algorithm %q", algorithm)
}
