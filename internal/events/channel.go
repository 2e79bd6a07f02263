package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var (
	// ErrClosed is returned by Publish after Close.
	ErrClosed = errors.New("event channel closed")
	// ErrBufferFull is returned by Publish when the source has fallen behind.
	ErrBufferFull = errors.New("event buffer full")
)

// ChannelPublisher is the in-process Publisher, paired with a ChannelSource.
type ChannelPublisher struct {
	mu     sync.RWMutex
	ch     chan ArtefactPublished
	closed bool
}

// ChannelSource is the in-process Source.
type ChannelSource struct {
	ch     <-chan ArtefactPublished
	logger *slog.Logger
}

// NewChannel returns a connected publisher and source sharing a buffer of
// the given size.
func NewChannel(buffer int, logger *slog.Logger) (*ChannelPublisher, *ChannelSource) {
	if logger == nil {
		logger = slog.Default()
	}
	ch := make(chan ArtefactPublished, buffer)
	return &ChannelPublisher{ch: ch}, &ChannelSource{ch: ch, logger: logger}
}

// Publish buffers the event without waiting. A full buffer drops the event
// and returns ErrBufferFull so the caller can record the loss.
func (p *ChannelPublisher) Publish(ctx context.Context, evt ArtefactPublished) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.ch <- evt:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close stops accepting events; the source drains what is buffered.
func (p *ChannelPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.ch)
	}
}

// Run delivers events until ctx is cancelled or the publisher is closed and
// drained. Handler errors are logged and do not stop the loop.
func (s *ChannelSource) Run(ctx context.Context, handle Handler) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-s.ch:
			if !ok {
				return nil
			}
			if err := handle(ctx, evt); err != nil {
				s.logger.ErrorContext(ctx, "event handler failed",
					"artefact_id", evt.ArtefactID.String(),
					"error", err,
				)
			}
		}
	}
}
