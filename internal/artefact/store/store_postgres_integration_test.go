//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"courtpub/internal/artefact/models"
	"courtpub/internal/artefact/store"
	"courtpub/pkg/domain"
	"courtpub/pkg/platform/sentinel"
	"courtpub/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	now      time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.now = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "artefacts")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newArtefact(loc domain.LocationID, lt domain.ListTypeID, from, to time.Time) *models.Artefact {
	a, err := models.NewArtefact(models.NewArtefactParams{
		ID:          domain.NewArtefactID(),
		LocationID:  loc,
		ListTypeID:  lt,
		ContentDate: from,
		Sensitivity: domain.SensitivityPrivate,
		Language:    domain.LanguageWelsh,
		DisplayFrom: from,
		DisplayTo:   to,
		Provenance:  domain.ProvenanceXhibit,
		IsFlatFile:  true,
		Payload:     []byte("%PDF-1.7"),
		CreatedAt:   s.now,
	})
	s.Require().NoError(err)
	return a
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	a := s.newArtefact("101", 3, s.now.Add(-time.Hour), s.now.Add(time.Hour))
	s.Require().NoError(s.store.Create(ctx, a))

	got, err := s.store.FindByID(ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(a.ID, got.ID)
	s.Equal(a.LocationID, got.LocationID)
	s.Equal(a.ListTypeID, got.ListTypeID)
	s.Equal(a.Sensitivity, got.Sensitivity)
	s.Equal(a.Language, got.Language)
	s.Equal(a.Provenance, got.Provenance)
	s.True(got.IsFlatFile)
	s.Equal(a.Payload, got.Payload)
	s.True(a.DisplayTo.Equal(got.DisplayTo))

	s.ErrorIs(s.store.Create(ctx, a), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestFindMissing() {
	_, err := s.store.FindByID(context.Background(), domain.NewArtefactID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestSearchWindowIsInclusive() {
	ctx := context.Background()
	edge := s.newArtefact("101", 3, s.now.Add(-time.Hour), s.now)
	closed := s.newArtefact("101", 3, s.now.Add(-2*time.Hour), s.now.Add(-time.Minute))
	other := s.newArtefact("102", 3, s.now.Add(-time.Hour), s.now.Add(time.Hour))
	for _, a := range []*models.Artefact{edge, closed, other} {
		s.Require().NoError(s.store.Create(ctx, a))
	}

	got, err := s.store.Search(ctx, store.Filter{LocationID: "101", ListTypeID: 3, ActiveAt: s.now})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(edge.ID, got[0].ID)
}
