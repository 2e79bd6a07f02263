package gateway

import (
	"context"

	"courtpub/pkg/platform/circuit"
)

// Breaker stops calling a provider that keeps failing. Permanent errors are
// the caller's problem and do not count against the provider.
type Breaker struct {
	next    Gateway
	breaker *circuit.Breaker
}

func NewBreaker(name string, next Gateway, opts ...circuit.Option) *Breaker {
	opts = append([]circuit.Option{
		circuit.WithSuccessClassifier(func(err error) bool {
			return err == nil || IsPermanent(err)
		}),
	}, opts...)
	return &Breaker{next: next, breaker: circuit.New(name, opts...)}
}

func (b *Breaker) SendEmail(ctx context.Context, msg Message) (*Receipt, error) {
	receipt, err := circuit.Do(b.breaker, func() (*Receipt, error) {
		return b.next.SendEmail(ctx, msg)
	})
	if circuit.IsRejected(err) {
		return nil, &Error{Provider: b.breaker.Name(), Err: err}
	}
	return receipt, err
}

func (b *Breaker) IsOpen() bool { return b.breaker.IsOpen() }
