// Package service notifies subscribers when a publication is accepted.
package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	artefactModels "courtpub/internal/artefact/models"
	"courtpub/internal/notification/dispatch"
	"courtpub/internal/notification/gateway"
	"courtpub/internal/notification/metrics"
	"courtpub/internal/notification/models"
	"courtpub/internal/reference"
	subModels "courtpub/internal/subscription/models"
	"courtpub/pkg/domain"
	dErrors "courtpub/pkg/domain-errors"
	"courtpub/pkg/email"
)

const (
	DefaultConcurrency = 8
	contentDateLayout  = "02 January 2006"
)

// RecipientFinder resolves the subscribers of a publication.
type RecipientFinder interface {
	FindRecipients(ctx context.Context, a *artefactModels.Artefact) ([]subModels.Recipient, error)
}

// LogStore persists notification log rows.
type LogStore interface {
	CreatePending(ctx context.Context, log *models.NotificationLog) (*models.NotificationLog, bool, error)
	MarkSent(ctx context.Context, id domain.NotificationID, gatewayID string, at time.Time) error
	MarkFailed(ctx context.Context, id domain.NotificationID, msg string, at time.Time) error
}

// Sender delivers one message with retry.
type Sender interface {
	SendMessage(ctx context.Context, msg gateway.Message) dispatch.Result
}

// PDFLocator finds the PDF rendering of a publication, if there is one.
type PDFLocator interface {
	LocatePDF(ctx context.Context, a *artefactModels.Artefact) (models.PDF, bool, error)
}

// ReferenceProvider returns the current reference snapshot.
type ReferenceProvider interface {
	Snapshot() *reference.Snapshot
}

type Service struct {
	recipients   RecipientFinder
	logs         LogStore
	sender       Sender
	reference    ReferenceProvider
	defaults     dispatch.TemplatePair
	pdfs         PDFLocator
	pdfSizeLimit int64
	concurrency  int
	serviceURL   string
	now          func() time.Time
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
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

// WithConcurrency bounds how many recipients are notified at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithPDFSizeLimit sets the exclusive upper bound for linking a PDF.
func WithPDFSizeLimit(limit int64) Option {
	return func(s *Service) {
		if limit > 0 {
			s.pdfSizeLimit = limit
		}
	}
}

func WithPDFLocator(l PDFLocator) Option {
	return func(s *Service) {
		s.pdfs = l
	}
}

// WithServiceURL sets the public base URL used in email links.
func WithServiceURL(u string) Option {
	return func(s *Service) {
		s.serviceURL = strings.TrimRight(u, "/")
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(recipients RecipientFinder, logs LogStore, sender Sender, ref ReferenceProvider, defaults dispatch.TemplatePair, opts ...Option) *Service {
	s := &Service{
		recipients:   recipients,
		logs:         logs,
		sender:       sender,
		reference:    ref,
		defaults:     defaults,
		pdfSizeLimit: dispatch.DefaultPDFSizeLimit,
		concurrency:  DefaultConcurrency,
		now:          time.Now,
		logger:       slog.Default(),
		tracer:       otel.Tracer("courtpub/internal/notification"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pdfs == nil {
		s.pdfs = PayloadPDFLocator{BaseURL: s.serviceURL}
	}
	return s
}

type outcome int

const (
	outcomeFailed outcome = iota
	outcomeSent
	outcomeSkipped
)

// NotifyPublication sends one email per subscriber of a. Recipients already
// notified about a are skipped; a PENDING row left by an earlier run is
// retried. Per-recipient failures are counted, not returned.
func (s *Service) NotifyPublication(ctx context.Context, a *artefactModels.Artefact) (*models.Summary, error) {
	if a == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "artefact is required")
	}
	ctx, span := s.tracer.Start(ctx, "notification.publication", trace.WithAttributes(
		attribute.String("artefact.id", a.ID.String()),
		attribute.String("artefact.location_id", string(a.LocationID)),
		attribute.Int("artefact.list_type_id", int(a.ListTypeID)),
	))
	defer span.End()

	recipients, err := s.recipients.FindRecipients(ctx, a)
	if err != nil {
		return nil, err
	}
	summary := &models.Summary{Recipients: len(recipients)}
	if len(recipients) == 0 {
		return summary, nil
	}

	content := s.newContent(ctx, a)
	outcomes := make([]outcome, len(recipients))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, r := range recipients {
		g.Go(func() error {
			outcomes[i] = s.notify(gctx, a, content, r)
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range outcomes {
		switch o {
		case outcomeSent:
			summary.Sent++
		case outcomeSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
	}
	s.metrics.IncrementSkipped(summary.Skipped)
	span.SetAttributes(
		attribute.Int("notification.recipients", summary.Recipients),
		attribute.Int("notification.sent", summary.Sent),
		attribute.Int("notification.failed", summary.Failed),
	)
	s.logger.InfoContext(ctx, "publication notified",
		"artefact_id", a.ID.String(),
		"recipients", summary.Recipients,
		"sent", summary.Sent,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

func (s *Service) notify(ctx context.Context, a *artefactModels.Artefact, c content, r subModels.Recipient) outcome {
	start := s.now()
	row, err := models.NewPendingLog(r.SubscriptionID, r.UserID, a.ID, a.LocationID, start)
	if err != nil {
		s.logger.ErrorContext(ctx, "invalid recipient", "artefact_id", a.ID.String(), "error", err)
		return outcomeFailed
	}
	stored, created, err := s.logs.CreatePending(ctx, row)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to record pending notification",
			"artefact_id", a.ID.String(),
			"subscription_id", r.SubscriptionID.String(),
			"error", err,
		)
		return outcomeFailed
	}
	if !created && stored.IsTerminal() {
		return outcomeSkipped
	}

	res := s.sender.SendMessage(ctx, gateway.Message{
		TemplateID:       c.templateID,
		RecipientAddress: r.Email,
		Personalisation:  c.personalise(r),
		Reference:        stored.ID.String(),
	})
	at := s.now()
	if res.Success {
		s.metrics.ObserveOutcome(string(models.StatusSent), at.Sub(start))
		if err := s.logs.MarkSent(ctx, stored.ID, res.NotificationID, at); err != nil {
			s.logger.ErrorContext(ctx, "failed to mark notification sent",
				"notification_id", stored.ID.String(),
				"gateway_id", res.NotificationID,
				"error", err,
			)
		}
		return outcomeSent
	}

	s.metrics.ObserveOutcome(string(models.StatusFailed), at.Sub(start))
	msg := "delivery failed"
	if res.Err != nil {
		msg = res.Err.Error()
	}
	if err := s.logs.MarkFailed(ctx, stored.ID, msg, at); err != nil {
		s.logger.ErrorContext(ctx, "failed to mark notification failed",
			"notification_id", stored.ID.String(),
			"error", err,
		)
	}
	s.logger.WarnContext(ctx, "notification failed",
		"notification_id", stored.ID.String(),
		"attempts", res.Attempts,
		"error", msg,
	)
	return outcomeFailed
}

// content is the part of the email shared by every recipient of one
// publication.
type content struct {
	templateID string
	fields     map[string]string
}

func (s *Service) newContent(ctx context.Context, a *artefactModels.Artefact) content {
	snap := s.reference.Snapshot()
	templates := dispatch.Templates{Default: s.defaults, Overrides: dispatch.OverridesFromSnapshot(snap)}

	pdf, hasPDF, err := s.pdfs.LocatePDF(ctx, a)
	if err != nil {
		s.logger.WarnContext(ctx, "pdf lookup failed, sending summary only",
			"artefact_id", a.ID.String(),
			"error", err,
		)
		hasPDF = false
	}
	underLimit := hasPDF && dispatch.PDFUnderLimit(pdf.Size, s.pdfSizeLimit)

	fields := map[string]string{
		"list_type":        listTypeName(snap, a.ListTypeID),
		"location":         locationName(snap, a.LocationID, a.Language),
		"content_date":     a.ContentDate.Format(contentDateLayout),
		"publication_link": fmt.Sprintf("%s/summary-of-publications?locationId=%s", s.serviceURL, a.LocationID),
	}
	if underLimit {
		fields["pdf_link"] = pdf.URL
	}
	return content{
		templateID: dispatch.SelectTemplate(templates, a.ListTypeID, hasPDF, underLimit),
		fields:     fields,
	}
}

// personalise adds the recipient's name. Missing stored names are derived
// from their email.
func (c content) personalise(r subModels.Recipient) map[string]string {
	out := make(map[string]string, len(c.fields)+2)
	for k, v := range c.fields {
		out[k] = v
	}
	name := email.Salutation(r.FirstName, r.Surname, r.Email)
	out["first_name"] = name.First
	out["surname"] = name.Surname
	return out
}

func listTypeName(snap *reference.Snapshot, id domain.ListTypeID) string {
	if snap != nil {
		if lt, ok := snap.ListTypeByID(id); ok {
			return lt.DisplayName()
		}
	}
	return fmt.Sprintf("List %d", id)
}

func locationName(snap *reference.Snapshot, id domain.LocationID, lang domain.Language) string {
	if snap != nil {
		if loc, ok := snap.Location(id); ok {
			return loc.NameFor(lang)
		}
	}
	return string(id)
}

var pdfMagic = []byte("%PDF-")

// PayloadPDFLocator treats a flat-file artefact whose payload is a PDF as its
// own rendering.
type PayloadPDFLocator struct {
	BaseURL string
}

func (l PayloadPDFLocator) LocatePDF(_ context.Context, a *artefactModels.Artefact) (models.PDF, bool, error) {
	if !a.IsFlatFile || !bytes.HasPrefix(a.Payload, pdfMagic) {
		return models.PDF{}, false, nil
	}
	return models.PDF{
		Size: int64(len(a.Payload)),
		URL:  fmt.Sprintf("%s/file-publication?artefactId=%s", l.BaseURL, a.ID),
	}, true, nil
}
