// Package service serves artefacts to viewers through the access engine.
package service

import (
	"context"
	"errors"
	"log/slog"

	"courtpub/internal/access"
	"courtpub/internal/artefact/models"
	"courtpub/internal/artefact/store"
	"courtpub/internal/pagination"
	"courtpub/internal/reference"
	"courtpub/pkg/domain"
	dErrors "courtpub/pkg/domain-errors"
	"courtpub/pkg/platform/sentinel"
	"courtpub/pkg/requestcontext"
)

// Store is the subset of the artefact store this service reads.
type Store interface {
	FindByID(ctx context.Context, id domain.ArtefactID) (*models.Artefact, error)
	Search(ctx context.Context, f store.Filter) ([]*models.Artefact, error)
}

// ReferenceProvider returns the current reference snapshot.
type ReferenceProvider interface {
	Snapshot() *reference.Snapshot
}

type Service struct {
	store     Store
	reference ReferenceProvider
	engine    *access.Engine
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(st Store, ref ReferenceProvider, engine *access.Engine, opts ...Option) *Service {
	s := &Service{
		store:     st,
		reference: ref,
		engine:    engine,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Page is one page of artefacts visible to the viewer.
type Page struct {
	Items      []*models.Artefact
	Pagination pagination.Pagination
}

// GetMetadata returns the artefact when the context viewer may see it.
func (s *Service) GetMetadata(ctx context.Context, id domain.ArtefactID) (*models.Artefact, error) {
	a, lt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	viewer := requestcontext.Viewer(ctx)
	if !s.engine.CanViewMetadata(viewer, a, lt, requestcontext.Now(ctx)) {
		return nil, dErrors.New(dErrors.CodeForbidden, "not permitted to view this publication")
	}
	return a, nil
}

// GetData returns the artefact including payload.
func (s *Service) GetData(ctx context.Context, id domain.ArtefactID) (*models.Artefact, error) {
	a, lt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	viewer := requestcontext.Viewer(ctx)
	decision := s.engine.Decide(viewer, a, lt, requestcontext.Now(ctx))
	if !decision.Data {
		s.logger.InfoContext(ctx, "artefact data access denied",
			"artefact_id", a.ID.String(),
			"role", string(viewer.Role),
			"metadata_visible", decision.Metadata,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.New(dErrors.CodeForbidden, "not permitted to view this publication")
	}
	return a, nil
}

// ListForLocation returns the artefacts at a location whose metadata the
// viewer may see, paginated.
func (s *Service) ListForLocation(ctx context.Context, locationID domain.LocationID, page, perPage int) (*Page, error) {
	all, err := s.store.Search(ctx, store.Filter{LocationID: locationID})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list artefacts")
	}

	snapshot := s.reference.Snapshot()
	viewer := requestcontext.Viewer(ctx)
	now := requestcontext.Now(ctx)
	visible := make([]*models.Artefact, 0, len(all))
	for _, a := range all {
		lt, _ := snapshot.ListTypeByID(a.ListTypeID)
		if s.engine.CanViewMetadata(viewer, a, lt, now) {
			visible = append(visible, a)
		}
	}

	p, err := pagination.Paginate(page, len(visible), perPage)
	if err != nil {
		return nil, err
	}
	return &Page{Items: pagination.Page(visible, p), Pagination: p}, nil
}

func (s *Service) load(ctx context.Context, id domain.ArtefactID) (*models.Artefact, reference.ListType, error) {
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, reference.ListType{}, dErrors.New(dErrors.CodeNotFound, "artefact not found")
		}
		return nil, reference.ListType{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load artefact")
	}
	// A list type missing from reference data leaves the zero ListType, whose
	// empty default sensitivity ranks strictest.
	lt, _ := s.reference.Snapshot().ListTypeByID(a.ListTypeID)
	return a, lt, nil
}
