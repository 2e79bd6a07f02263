package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"courtpub/internal/notification/gateway"
	"courtpub/internal/notification/metrics"
	"courtpub/pkg/requestcontext"
)

const (
	DefaultRetries      = 1
	DefaultInitialDelay = time.Second
	maxBackoffShift     = 30
)

// ErrMissingID is returned when a gateway accepts a message without giving a
// delivery id.
var ErrMissingID = errors.New("gateway response has no notification id")

// Result is the outcome of one Send. NotificationID is set only on success.
type Result struct {
	Success        bool
	NotificationID string
	Attempts       int
	Err            error
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

type Dispatcher struct {
	gateway      gateway.Gateway
	retries      int
	initialDelay time.Duration
	sleep        SleepFunc
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
}

type Option func(*Dispatcher)

// WithRetries sets how many extra attempts follow a failed first attempt.
func WithRetries(n int) Option {
	return func(d *Dispatcher) {
		if n >= 0 {
			d.retries = n
		}
	}
}

// WithInitialDelay sets the wait before the first retry. Later waits double.
func WithInitialDelay(delay time.Duration) Option {
	return func(d *Dispatcher) {
		if delay >= 0 {
			d.initialDelay = delay
		}
	}
}

func WithSleep(fn SleepFunc) Option {
	return func(d *Dispatcher) {
		d.sleep = fn
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

func New(gw gateway.Gateway, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		gateway:      gw,
		retries:      DefaultRetries,
		initialDelay: DefaultInitialDelay,
		sleep:        sleepContext,
		logger:       slog.Default(),
		tracer:       otel.Tracer("courtpub/internal/notification/dispatch"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Backoff is the wait before retry number attempt (1-based): initial,
// 2*initial, 4*initial and so on.
func Backoff(initial time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		return initial
	}
	shift := attempt - 1
	if shift > maxBackoffShift {
		shift = maxBackoffShift
	}
	return initial << shift
}

// Send delivers one templated email.
func (d *Dispatcher) Send(ctx context.Context, address, templateID string, personalisation map[string]string) Result {
	return d.SendMessage(ctx, gateway.Message{
		TemplateID:       templateID,
		RecipientAddress: address,
		Personalisation:  personalisation,
	})
}

// SendMessage delivers msg, retrying transient failures. It never panics and
// always returns once the attempt budget is spent.
func (d *Dispatcher) SendMessage(ctx context.Context, msg gateway.Message) Result {
	ctx, span := d.tracer.Start(ctx, "notification.send", trace.WithAttributes(
		attribute.String("notification.template_id", msg.TemplateID),
		attribute.String("notification.reference", msg.Reference),
	))
	defer span.End()

	total := d.retries + 1
	var lastErr error
	for attempt := 1; attempt <= total; attempt++ {
		id, err := d.attempt(ctx, msg)
		if err == nil {
			d.metrics.IncrementAttempt("success")
			span.SetAttributes(attribute.Int("notification.attempts", attempt))
			return Result{Success: true, NotificationID: id, Attempts: attempt}
		}
		lastErr = err
		d.metrics.IncrementAttempt("failure")
		d.logger.WarnContext(ctx, "notification attempt failed",
			"attempt", attempt,
			"of", total,
			"template_id", msg.TemplateID,
			"reference", msg.Reference,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)

		if gateway.IsPermanent(err) || attempt == total {
			d.finish(span, attempt, lastErr)
			return Result{Attempts: attempt, Err: lastErr}
		}
		if err := d.sleep(ctx, Backoff(d.initialDelay, attempt)); err != nil {
			lastErr = fmt.Errorf("retry aborted: %w (last error: %v)", err, lastErr)
			d.finish(span, attempt, lastErr)
			return Result{Attempts: attempt, Err: lastErr}
		}
	}
	d.finish(span, total, lastErr)
	return Result{Attempts: total, Err: lastErr}
}

func (d *Dispatcher) finish(span trace.Span, attempts int, err error) {
	span.SetAttributes(attribute.Int("notification.attempts", attempts))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// attempt makes one gateway call and turns panics and id-less receipts into
// errors.
func (d *Dispatcher) attempt(ctx context.Context, msg gateway.Message) (id string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("gateway panic: %v", rec)
		}
	}()
	receipt, err := d.gateway.SendEmail(ctx, msg)
	if err != nil {
		return "", err
	}
	if receipt == nil || receipt.ID == "" {
		return "", ErrMissingID
	}
	return receipt.ID, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
