// Package worker turns artefact-published events into notifications.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	artefactModels "courtpub/internal/artefact/models"
	"courtpub/internal/events"
	"courtpub/internal/notification/models"
	"courtpub/pkg/domain"
	"courtpub/pkg/platform/sentinel"
)

// ArtefactFinder loads the artefact an event refers to.
type ArtefactFinder interface {
	FindByID(ctx context.Context, id domain.ArtefactID) (*artefactModels.Artefact, error)
}

// Notifier notifies the subscribers of one publication.
type Notifier interface {
	NotifyPublication(ctx context.Context, a *artefactModels.Artefact) (*models.Summary, error)
}

// Worker consumes events from a Source until its context ends.
type Worker struct {
	source    events.Source
	artefacts ArtefactFinder
	notifier  Notifier
	timeout   time.Duration
	logger    *slog.Logger
}

type Option func(*Worker)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

// WithEventTimeout bounds the work done for one event.
func WithEventTimeout(d time.Duration) Option {
	return func(w *Worker) {
		w.timeout = d
	}
}

func New(source events.Source, artefacts ArtefactFinder, notifier Notifier, opts ...Option) *Worker {
	w := &Worker{
		source:    source,
		artefacts: artefacts,
		notifier:  notifier,
		timeout:   5 * time.Minute,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Worker) Run(ctx context.Context) error {
	return w.source.Run(ctx, w.Handle)
}

// Handle processes one event. Events for artefacts that no longer exist are
// dropped.
func (w *Worker) Handle(ctx context.Context, evt events.ArtefactPublished) error {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	a, err := w.artefacts.FindByID(ctx, evt.ArtefactID)
	if errors.Is(err, sentinel.ErrNotFound) {
		w.logger.WarnContext(ctx, "published artefact not found, dropping event",
			"artefact_id", evt.ArtefactID.String(),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load artefact %s: %w", evt.ArtefactID, err)
	}
	if a.NoMatch {
		w.logger.InfoContext(ctx, "artefact has no matched location, not notifying",
			"artefact_id", a.ID.String(),
		)
		return nil
	}

	if _, err := w.notifier.NotifyPublication(ctx, a); err != nil {
		return fmt.Errorf("notify publication %s: %w", a.ID, err)
	}
	return nil
}
