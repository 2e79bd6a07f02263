package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"courtpub/internal/subscription/models"
	"courtpub/pkg/domain"
	"courtpub/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
	now   time.Time
	alice models.User
	bob   models.User
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
	s.now = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	s.alice = models.User{ID: domain.NewUserID(), Email: "alice@example.com", FirstName: "Alice", Surname: "Jones"}
	s.bob = models.User{ID: domain.NewUserID(), Email: "bob@example.com", FirstName: "Bob", Surname: "Evans"}
	s.store.PutUser(s.alice)
	s.store.PutUser(s.bob)
}

func (s *InMemoryStoreSuite) location(user domain.UserID, loc domain.LocationID) *models.LocationSubscription {
	sub := &models.LocationSubscription{ID: domain.NewSubscriptionID(), UserID: user, LocationID: loc, CreatedAt: s.now}
	s.Require().NoError(s.store.CreateLocation(s.ctx, sub))
	return sub
}

func (s *InMemoryStoreSuite) listType(user domain.UserID, lt domain.ListTypeID, langs ...domain.Language) *models.ListTypeSubscription {
	sub, err := models.NewListTypeSubscription(domain.NewSubscriptionID(), user, lt, langs, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.UpsertListType(s.ctx, sub))
	return sub
}

func (s *InMemoryStoreSuite) TestLocationLifecycle() {
	sub := s.location(s.alice.ID, "101")

	got, err := s.store.FindLocation(s.ctx, sub.ID)
	s.Require().NoError(err)
	s.Equal(sub, got)

	s.Run("same user and location conflicts", func() {
		dup := &models.LocationSubscription{ID: domain.NewSubscriptionID(), UserID: s.alice.ID, LocationID: "101", CreatedAt: s.now}
		s.ErrorIs(s.store.CreateLocation(s.ctx, dup), sentinel.ErrConflict)
	})

	s.Run("another user may hold the same location", func() {
		s.location(s.bob.ID, "101")
	})

	s.Require().NoError(s.store.DeleteLocation(s.ctx, sub.ID))
	_, err = s.store.FindLocation(s.ctx, sub.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.DeleteLocation(s.ctx, sub.ID), sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestUpsertListTypeReplacesLanguages() {
	first := s.listType(s.alice.ID, 3, domain.LanguageEnglish)

	again, err := models.NewListTypeSubscription(domain.NewSubscriptionID(), s.alice.ID, 3, []domain.Language{domain.LanguageWelsh}, s.now.Add(time.Hour))
	s.Require().NoError(err)
	s.Require().NoError(s.store.UpsertListType(s.ctx, again))

	subs, err := s.store.ListListTypesByUser(s.ctx, s.alice.ID)
	s.Require().NoError(err)
	s.Require().Len(subs, 1)
	s.Equal(first.ID, subs[0].ID)
	s.Equal([]domain.Language{domain.LanguageWelsh}, subs[0].Languages)
	s.Equal(s.now.Add(time.Hour), subs[0].UpdatedAt)
	s.Equal(s.now, subs[0].CreatedAt)
}

func (s *InMemoryStoreSuite) TestRecipients() {
	aliceLoc := s.location(s.alice.ID, "101")
	s.location(domain.NewUserID(), "101")
	bobWelsh := s.listType(s.bob.ID, 4, domain.LanguageWelsh)
	s.listType(s.alice.ID, 4, domain.LanguageEnglish)

	s.Run("location join skips unknown users", func() {
		got, err := s.store.RecipientsByLocation(s.ctx, "101")
		s.Require().NoError(err)
		s.Equal([]models.Recipient{{
			UserID:         s.alice.ID,
			Email:          s.alice.Email,
			FirstName:      "Alice",
			Surname:        "Jones",
			SubscriptionID: aliceLoc.ID,
		}}, got)
	})

	s.Run("list type filters by language overlap", func() {
		got, err := s.store.RecipientsByListType(s.ctx, 4, []domain.Language{domain.LanguageWelsh})
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal(bobWelsh.ID, got[0].SubscriptionID)

		got, err = s.store.RecipientsByListType(s.ctx, 4, []domain.Language{domain.LanguageEnglish, domain.LanguageWelsh})
		s.Require().NoError(err)
		s.Len(got, 2)
	})

	s.Run("other list types do not match", func() {
		got, err := s.store.RecipientsByListType(s.ctx, 1, []domain.Language{domain.LanguageEnglish})
		s.Require().NoError(err)
		s.Empty(got)
	})
}

func (s *InMemoryStoreSuite) TestDeleteByUser() {
	s.location(s.alice.ID, "101")
	s.location(s.alice.ID, "102")
	s.listType(s.alice.ID, 1, domain.LanguageEnglish)
	kept := s.location(s.bob.ID, "101")

	n, err := s.store.DeleteByUser(s.ctx, s.alice.ID)
	s.Require().NoError(err)
	s.Equal(3, n)

	left, err := s.store.ListLocationsByUser(s.ctx, s.alice.ID)
	s.Require().NoError(err)
	s.Empty(left)

	_, err = s.store.FindLocation(s.ctx, kept.ID)
	s.NoError(err)
}
