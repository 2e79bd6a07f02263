package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"courtpub/internal/notification/gateway"
	"courtpub/internal/notification/gateway/mocks"
)

type DispatcherSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	gateway *mocks.MockGateway
	sleeps  []time.Duration
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

func (s *DispatcherSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.gateway = mocks.NewMockGateway(s.ctrl)
	s.sleeps = nil
}

func (s *DispatcherSuite) dispatcher(opts ...Option) *Dispatcher {
	opts = append([]Option{WithSleep(func(_ context.Context, d time.Duration) error {
		s.sleeps = append(s.sleeps, d)
		return nil
	})}, opts...)
	return New(s.gateway, opts...)
}

var errUnavailable = &gateway.Error{Provider: "notify", StatusCode: 503, Err: errors.New("unavailable")}

func (s *DispatcherSuite) TestSucceedsFirstTime() {
	s.gateway.EXPECT().SendEmail(gomock.Any(), gateway.Message{
		TemplateID:       "summary-only",
		RecipientAddress: "jo@example.com",
		Personalisation:  map[string]string{"first_name": "Jo"},
	}).Return(&gateway.Receipt{ID: "gw-1"}, nil)

	res := s.dispatcher().Send(context.Background(), "jo@example.com", "summary-only", map[string]string{"first_name": "Jo"})
	s.True(res.Success)
	s.Equal("gw-1", res.NotificationID)
	s.Equal(1, res.Attempts)
	s.NoError(res.Err)
	s.Empty(s.sleeps)
}

func (s *DispatcherSuite) TestBackoffDoublesBetweenAttempts() {
	gomock.InOrder(
		s.gateway.EXPECT().SendEmail(gomock.Any(), gomock.Any()).Return(nil, errUnavailable),
		s.gateway.EXPECT().SendEmail(gomock.Any(), gomock.Any()).Return(nil, errUnavailable),
		s.gateway.EXPECT().SendEmail(gomock.Any(), gomock.Any()).Return(&gateway.Receipt{ID: "gw-3"}, nil),
	)

	d := s.dispatcher(WithRetries(2), WithInitialDelay(100*time.Millisecond))
	res := d.Send(context.Background(), "jo@example.com", "summary-only", nil)

	s.True(res.Success)
	s.Equal("gw-3", res.NotificationID)
	s.Equal(3, res.Attempts)
	s.Equal([]time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, s.sleeps)
}

func (s *DispatcherSuite) TestExhaustedAttemptsReturnFailure() {
	s.gateway.EXPECT().SendEmail(gomock.Any(), gomock.Any()).Return(nil, errUnavailable).Times(4)

	d := s.dispatcher(WithRetries(3), WithInitialDelay(time.Second))
	res := d.Send(context.Background(), "jo@example.com", "summary-only", nil)

	s.False(res.Success)
	s.Empty(res.NotificationID)
	s.Equal(4, res.Attempts)
	s.ErrorIs(res.Err, errUnavailable)
	s.Equal([]time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, s.sleeps)
}

func (s *DispatcherSuite) TestDefaultsToOneRetry() {
	s.gateway.EXPECT().SendEmail(gomock.Any(), gomock.Any()).Return(nil, errUnavailable).Times(2)

	res := s.dispatcher().Send(context.Background(), "jo@example.com", "summary-only", nil)
	s.False(res.Success)
	s.Equal(2, res.Attempts)
	s.Equal([]time.Duration{DefaultInitialDelay}, s.sleeps)
}

func (s *DispatcherSuite) TestMissingIDIsAFailedAttempt() {
	gomock.InOrder(
		s.gateway.EXPECT().SendEmail(gomock.Any(), gomock.Any()).Return(&gateway.Receipt{}, nil),
		s.gateway.EXPECT().SendEmail(gomock.Any(), gomock.Any()).Return(nil, nil),
	)

	res := s.dispatcher().Send(context.Background(), "jo@example.com", "summary-only", nil)
	s.False(res.Success)
	s.ErrorIs(res.Err, ErrMissingID)
	s.Equal(2, res.Attempts)
}

func (s *DispatcherSuite) TestPermanentErrorStopsRetrying() {
	permanent := &gateway.Error{Provider: "notify", StatusCode: 400, Permanent: true, Err: errors.New("bad template")}
	s.gateway.EXPECT().SendEmail(gomock.Any(), gomock.Any()).Return(nil, permanent)

	res := s.dispatcher(WithRetries(5)).Send(context.Background(), "jo@example.com", "nope", nil)
	s.False(res.Success)
	s.Equal(1, res.Attempts)
	s.Empty(s.sleeps)
}

func (s *DispatcherSuite) TestGatewayPanicIsRecovered() {
	gomock.InOrder(
		s.gateway.EXPECT().SendEmail(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, gateway.Message) (*gateway.Receipt, error) { panic("boom") }),
		s.gateway.EXPECT().SendEmail(gomock.Any(), gomock.Any()).Return(&gateway.Receipt{ID: "gw-2"}, nil),
	)

	res := s.dispatcher().Send(context.Background(), "jo@example.com", "summary-only", nil)
	s.True(res.Success)
	s.Equal(2, res.Attempts)
}

func (s *DispatcherSuite) TestCancelledWaitEndsRetries() {
	s.gateway.EXPECT().SendEmail(gomock.Any(), gomock.Any()).Return(nil, errUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := New(s.gateway, WithRetries(3), WithInitialDelay(time.Hour))
	res := d.Send(ctx, "jo@example.com", "summary-only", nil)

	s.False(res.Success)
	s.Equal(1, res.Attempts)
	s.ErrorIs(res.Err, context.Canceled)
}

func (s *DispatcherSuite) TestBackoff() {
	s.Equal(time.Second, Backoff(time.Second, 1))
	s.Equal(2*time.Second, Backoff(time.Second, 2))
	s.Equal(8*time.Second, Backoff(time.Second, 4))
	s.Equal(time.Second, Backoff(time.Second, 0))
	s.Equal(time.Duration(0), Backoff(0, 3))
}
