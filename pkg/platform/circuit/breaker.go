// Package circuit wraps sony/gobreaker with the option style used across the
// service.
package circuit

import (
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// State is the breaker state.
type State = gobreaker.State

const (
	StateClosed   = gobreaker.StateClosed
	StateHalfOpen = gobreaker.StateHalfOpen
	StateOpen     = gobreaker.StateOpen
)

// Breaker trips after consecutive failures and rejects calls until the open
// timeout has passed.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

type Option func(*gobreaker.Settings)

// WithFailureThreshold sets how many consecutive failures open the breaker.
func WithFailureThreshold(n uint32) Option {
	return func(s *gobreaker.Settings) {
		if n == 0 {
			return
		}
		s.ReadyToTrip = func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= n
		}
	}
}

// WithOpenTimeout sets how long the breaker stays open before letting a probe
// through.
func WithOpenTimeout(d time.Duration) Option {
	return func(s *gobreaker.Settings) {
		s.Timeout = d
	}
}

// WithHalfOpenRequests sets how many probes are allowed while half-open.
func WithHalfOpenRequests(n uint32) Option {
	return func(s *gobreaker.Settings) {
		s.MaxRequests = n
	}
}

// WithSuccessClassifier decides which errors do not count against the
// backend. Errors for which ok returns true are returned to the caller but
// leave the breaker alone.
func WithSuccessClassifier(ok func(err error) bool) Option {
	return func(s *gobreaker.Settings) {
		s.IsSuccessful = func(err error) bool {
			return err == nil || ok(err)
		}
	}
}

// WithStateChange is called on every transition.
func WithStateChange(fn func(name string, from, to State)) Option {
	return func(s *gobreaker.Settings) {
		s.OnStateChange = fn
	}
}

func New(name string, opts ...Option) *Breaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
	}
	for _, opt := range opts {
		opt(&settings)
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *Breaker) Name() string { return b.cb.Name() }

func (b *Breaker) State() State { return b.cb.State() }

func (b *Breaker) IsOpen() bool { return b.cb.State() == StateOpen }

// Do runs fn through the breaker.
func Do[T any](b *Breaker, fn func() (T, error)) (T, error) {
	out, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	v, _ := out.(T)
	return v, err
}

// IsRejected reports whether err came from the breaker refusing the call
// rather than from fn.
func IsRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
