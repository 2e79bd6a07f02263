// Package service runs the ingestion pipeline: validate, store the artefact,
// record the outcome, announce the publication.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	artefactModels "courtpub/internal/artefact/models"
	"courtpub/internal/events"
	"courtpub/internal/ingestion/metrics"
	"courtpub/internal/ingestion/models"
	"courtpub/internal/ingestion/validator"
	"courtpub/internal/reference"
	"courtpub/pkg/domain"
	"courtpub/pkg/requestcontext"
)

// ArtefactStore is where accepted publications are written.
type ArtefactStore interface {
	Create(ctx context.Context, a *artefactModels.Artefact) error
}

// LogStore is the append-only ingestion log.
type LogStore interface {
	Append(ctx context.Context, entry models.IngestionLog) error
}

// ReferenceProvider returns the current reference snapshot.
type ReferenceProvider interface {
	Snapshot() *reference.Snapshot
}

type Service struct {
	validator *validator.Validator
	reference ReferenceProvider
	artefacts ArtefactStore
	logs      LogStore
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithPublisher sets where matched publications are announced.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func New(v *validator.Validator, ref ReferenceProvider, artefacts ArtefactStore, logs LogStore, opts ...Option) *Service {
	s := &Service{
		validator: v,
		reference: ref,
		artefacts: artefacts,
		logs:      logs,
		publisher: events.NopPublisher{},
		logger:    slog.Default(),
		tracer:    otel.Tracer("courtpub/internal/ingestion"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessIngestion validates and stores one publication. It never returns an
// error and never panics: every outcome, including a recovered panic, is a
// Response, and exactly one ingestion log row is written per call.
func (s *Service) ProcessIngestion(ctx context.Context, req models.Request, rawBodySizeBytes int64) (resp models.Response) {
	ctx, span := s.tracer.Start(ctx, "ingestion.process")
	defer span.End()

	now := requestcontext.Now(ctx)
	logged := false
	noMatch := false
	// committed is set once the artefact and its SUCCESS row exist; a later
	// panic must not turn that into a system error.
	var committed *models.Response

	defer func() {
		if rec := recover(); rec != nil {
			s.logger.ErrorContext(ctx, "ingestion panic recovered",
				"panic", rec,
				"court_id", req.CourtID,
				"request_id", requestcontext.RequestID(ctx),
			)
			switch {
			case committed != nil:
				resp = *committed
			case !logged:
				s.appendLog(ctx, models.NewSystemErrorLog(now, req, fmt.Sprintf("panic: %v", rec)))
				resp = systemError()
			default:
				resp = systemError()
			}
		}
		status := resp.Outcome()
		s.metrics.ObserveOutcome(status, resp.Success && noMatch, rawBodySizeBytes)
		span.SetAttributes(
			attribute.String("ingestion.status", string(status)),
			attribute.Bool("ingestion.no_match", noMatch),
			attribute.String("ingestion.court_id", req.CourtID),
		)
		if status == models.StatusSystemError {
			span.SetStatus(codes.Error, "ingestion system error")
		}
	}()

	// Step 1: validate
	result := s.validator.Validate(req, rawBodySizeBytes, s.reference.Snapshot())
	if !result.IsValid {
		s.appendLog(ctx, models.NewValidationErrorLog(now, req, result.Errors))
		logged = true
		s.logger.InfoContext(ctx, "ingestion rejected",
			"court_id", req.CourtID,
			"errors", models.JoinErrors(result.Errors),
			"request_id", requestcontext.RequestID(ctx),
		)
		return models.Response{Success: false, Message: models.MessageValidation, Errors: result.Errors}
	}

	// Steps 2-3: identity, match flag, canonical provenance
	noMatch = !result.LocationExists
	p := result.Parsed
	artefact, err := artefactModels.NewArtefact(artefactModels.NewArtefactParams{
		ID:          domain.NewArtefactID(),
		LocationID:  p.LocationID,
		ListTypeID:  result.ListTypeID,
		ContentDate: p.ContentDate,
		Sensitivity: p.Sensitivity,
		Language:    p.Language,
		DisplayFrom: p.DisplayFrom,
		DisplayTo:   p.DisplayTo,
		Provenance:  p.Provenance,
		IsFlatFile:  p.IsFlatFile,
		NoMatch:     noMatch,
		Payload:     req.Content(),
		CreatedAt:   now,
	})

	// Step 4: store
	if err == nil {
		err = s.artefacts.Create(ctx, artefact)
	}
	if err != nil {
		s.appendLog(ctx, models.NewSystemErrorLog(now, req, err.Error()))
		logged = true
		s.logger.ErrorContext(ctx, "artefact create failed",
			"court_id", req.CourtID,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return systemError()
	}

	s.appendLog(ctx, models.NewSuccessLog(now, req, artefact.ID))
	logged = true
	s.logger.InfoContext(ctx, "artefact ingested",
		"artefact_id", artefact.ID.String(),
		"location_id", artefact.LocationID.String(),
		"list_type_id", int(artefact.ListTypeID),
		"no_match", noMatch,
		"request_id", requestcontext.RequestID(ctx),
	)

	message := models.MessageIngested
	if noMatch {
		message = models.MessageIngestedNoMatch
	}
	success := models.Response{
		Success:    true,
		ArtefactID: artefact.ID.String(),
		NoMatch:    &noMatch,
		Message:    message,
	}
	committed = &success

	if !noMatch {
		s.publish(ctx, artefact)
	}
	return success
}

func (s *Service) publish(ctx context.Context, a *artefactModels.Artefact) {
	evt := events.ArtefactPublished{
		ArtefactID:  a.ID,
		LocationID:  a.LocationID,
		ListTypeID:  a.ListTypeID,
		Language:    a.Language,
		PublishedAt: a.CreatedAt,
	}
	defer func() {
		if rec := recover(); rec != nil {
			s.publishFailed(ctx, a, fmt.Errorf("publisher panic: %v", rec))
		}
	}()
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.publishFailed(ctx, a, err)
	}
}

// publishFailed records an undelivered event. The artefact stays ingested.
func (s *Service) publishFailed(ctx context.Context, a *artefactModels.Artefact, err error) {
	s.metrics.IncrementPublishFailures()
	s.logger.ErrorContext(ctx, "artefact published event not delivered",
		"artefact_id", a.ID.String(),
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
}

// appendLog writes the audit row. A failed write is logged and counted but
// does not change the response.
func (s *Service) appendLog(ctx context.Context, entry models.IngestionLog) {
	if err := s.logs.Append(ctx, entry); err != nil {
		s.metrics.IncrementLogWriteFailures()
		s.logger.ErrorContext(ctx, "ingestion log write failed",
			"status", string(entry.Status),
			"court_id", entry.CourtID,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

func systemError() models.Response {
	return models.Response{Success: false, Message: models.MessageInternal}
}
