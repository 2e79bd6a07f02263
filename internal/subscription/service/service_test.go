package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,NotificationLogPurger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	artefactModels "courtpub/internal/artefact/models"
	"courtpub/internal/reference"
	"courtpub/internal/reference/referencetest"
	"courtpub/internal/subscription/models"
	"courtpub/internal/subscription/service/mocks"
	"courtpub/internal/subscription/store"
	"courtpub/pkg/domain"
	dErrors "courtpub/pkg/domain-errors"
	"courtpub/pkg/platform/sentinel"
	"courtpub/pkg/requestcontext"
)

type staticProvider struct {
	snap *reference.Snapshot
}

func (p staticProvider) Snapshot() *reference.Snapshot { return p.snap }

// courtsSnapshot is the fixture plus locations "1".."n".
func courtsSnapshot(n int) *reference.Snapshot {
	doc := referencetest.Document()
	for i := 1; i <= n; i++ {
		doc.Locations = append(doc.Locations, reference.Location{
			ID:   domain.LocationID(strconv.Itoa(i)),
			Name: "Court " + strconv.Itoa(i),
		})
	}
	return reference.MustSnapshot(doc)
}

func courtIDs(from, to int) []string {
	var ids []string
	for i := from; i <= to; i++ {
		ids = append(ids, strconv.Itoa(i))
	}
	return ids
}

type ServiceSuite struct {
	suite.Suite
	store   *store.InMemoryStore
	service *Service
	ctx     context.Context
	now     time.Time
	user    domain.UserID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = store.NewInMemoryStore()
	s.now = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.user = domain.NewUserID()
	s.service = New(s.store, staticProvider{courtsSnapshot(60)},
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	)
}

func (s *ServiceSuite) locationCount(userID domain.UserID) int {
	subs, err := s.store.ListLocationsByUser(s.ctx, userID)
	s.Require().NoError(err)
	return len(subs)
}

func (s *ServiceSuite) TestCreateSubscription() {
	sub, err := s.service.CreateSubscription(s.ctx, s.user, referencetest.Oxford)
	s.Require().NoError(err)
	s.Equal(s.user, sub.UserID)
	s.Equal(s.now, sub.CreatedAt)

	s.Run("repeat returns the existing subscription", func() {
		again, err := s.service.CreateSubscription(s.ctx, s.user, referencetest.Oxford)
		s.Require().NoError(err)
		s.Equal(sub.ID, again.ID)
		s.Equal(1, s.locationCount(s.user))
	})

	s.Run("unknown location", func() {
		_, err := s.service.CreateSubscription(s.ctx, s.user, "no-such-court")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestCreateSubscriptionAtCap() {
	_, err := s.service.CreateMultipleSubscriptions(s.ctx, s.user, courtIDs(1, 50))
	s.Require().NoError(err)

	_, err = s.service.CreateSubscription(s.ctx, s.user, "51")
	s.True(dErrors.HasCode(err, dErrors.CodeSubscriptionCap))
	s.Equal(50, s.locationCount(s.user))
}

func (s *ServiceSuite) TestCreateMultiplePartialFailure() {
	ids := []string{"1", "2", "not-a-court", "3"}
	result, err := s.service.CreateMultipleSubscriptions(s.ctx, s.user, ids)
	s.Require().NoError(err)

	s.Equal(3, result.Succeeded)
	s.Equal(1, result.Failed)
	s.Equal([]models.ItemError{{ID: "not-a-court", Message: "unknown location"}}, result.Errors)
	s.Equal(3, s.locationCount(s.user))
}

func (s *ServiceSuite) TestCreateMultipleDeduplicates() {
	_, err := s.service.CreateSubscription(s.ctx, s.user, "1")
	s.Require().NoError(err)

	result, err := s.service.CreateMultipleSubscriptions(s.ctx, s.user, []string{"1", " 2", "2 ", "2", ""})
	s.Require().NoError(err)
	s.Equal(2, result.Succeeded)
	s.Zero(result.Failed)
	s.Equal(2, s.locationCount(s.user))
}

func (s *ServiceSuite) TestCreateMultipleEmpty() {
	_, err := s.service.CreateMultipleSubscriptions(s.ctx, s.user, []string{" ", ""})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestFiftyFirstSubscriptionFails() {
	result, err := s.service.CreateMultipleSubscriptions(s.ctx, s.user, courtIDs(1, 50))
	s.Require().NoError(err)
	s.Equal(50, result.Succeeded)

	_, err = s.service.CreateMultipleSubscriptions(s.ctx, s.user, []string{"51"})
	s.True(dErrors.HasCode(err, dErrors.CodeSubscriptionCap))
	s.Equal(50, s.locationCount(s.user))

	s.Run("a batch crossing the cap writes nothing", func() {
		other := domain.NewUserID()
		_, err := s.service.CreateMultipleSubscriptions(s.ctx, other, courtIDs(1, 45))
		s.Require().NoError(err)

		_, err = s.service.CreateMultipleSubscriptions(s.ctx, other, courtIDs(46, 51))
		s.True(dErrors.HasCode(err, dErrors.CodeSubscriptionCap))
		s.Equal(45, s.locationCount(other))
	})

	s.Run("held and duplicate ids do not count toward the cap", func() {
		result, err := s.service.CreateMultipleSubscriptions(s.ctx, s.user, []string{"1", "1", "50"})
		s.Require().NoError(err)
		s.Equal(2, result.Succeeded)
	})
}

func (s *ServiceSuite) TestConcurrentBatchesNeverExceedCap() {
	const batches = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		capped    int
	)
	for b := 0; b < batches; b++ {
		wg.Add(1)
		go func(b int) {
			defer wg.Done()
			_, err := s.service.CreateMultipleSubscriptions(s.ctx, s.user, courtIDs(b*6+1, b*6+6))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case dErrors.HasCode(err, dErrors.CodeSubscriptionCap):
				capped++
			default:
				s.Failf("unexpected error", "%v", err)
			}
		}(b)
	}
	wg.Wait()

	s.Equal(8, succeeded)
	s.Equal(2, capped)
	s.Equal(48, s.locationCount(s.user))
}

func (s *ServiceSuite) TestUpsertListTypeSubscriptions() {
	result, err := s.service.UpsertListTypeSubscriptions(s.ctx, s.user,
		[]domain.ListTypeID{referencetest.CivilDaily, referencetest.CrownFirm, 999},
		[]domain.Language{domain.LanguageEnglish})
	s.Require().NoError(err)
	s.Equal(2, result.Succeeded)
	s.Equal([]models.ItemError{{ID: "999", Message: "unknown list type"}}, result.Errors)

	before, err := s.store.ListListTypesByUser(s.ctx, s.user)
	s.Require().NoError(err)
	s.Require().Len(before, 2)

	s.Run("resubscribing replaces languages in place", func() {
		later := requestcontext.WithTime(s.ctx, s.now.Add(time.Hour))
		result, err := s.service.UpsertListTypeSubscriptions(later, s.user,
			[]domain.ListTypeID{referencetest.CrownFirm},
			[]domain.Language{domain.LanguageWelsh, domain.LanguageEnglish, domain.LanguageWelsh})
		s.Require().NoError(err)
		s.Equal(1, result.Succeeded)

		after, err := s.store.ListListTypesByUser(s.ctx, s.user)
		s.Require().NoError(err)
		s.Require().Len(after, 2)
		crown := after[1]
		s.Equal(referencetest.CrownFirm, crown.ListTypeID)
		s.Equal(before[1].ID, crown.ID)
		s.Equal([]domain.Language{domain.LanguageWelsh, domain.LanguageEnglish}, crown.Languages)
		s.Equal(s.now.Add(time.Hour), crown.UpdatedAt)
		s.Equal(s.now, crown.CreatedAt)
	})

	s.Run("bilingual is rejected as a preference", func() {
		_, err := s.service.UpsertListTypeSubscriptions(s.ctx, s.user,
			[]domain.ListTypeID{referencetest.CivilDaily}, []domain.Language{domain.LanguageBilingual})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("no languages", func() {
		_, err := s.service.UpsertListTypeSubscriptions(s.ctx, s.user, []domain.ListTypeID{referencetest.CivilDaily}, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestUpsertListTypeCap() {
	svc := New(s.store, staticProvider{referencetest.Snapshot()}, WithMaxSubscriptions(2))
	english := []domain.Language{domain.LanguageEnglish}

	_, err := svc.UpsertListTypeSubscriptions(s.ctx, s.user, []domain.ListTypeID{referencetest.CivilDaily, referencetest.SJPPublic}, english)
	s.Require().NoError(err)

	_, err = svc.UpsertListTypeSubscriptions(s.ctx, s.user, []domain.ListTypeID{referencetest.CrownFirm}, english)
	s.True(dErrors.HasCode(err, dErrors.CodeSubscriptionCap))

	result, err := svc.UpsertListTypeSubscriptions(s.ctx, s.user, []domain.ListTypeID{referencetest.SJPPublic}, []domain.Language{domain.LanguageWelsh})
	s.Require().NoError(err, "updating a held list type is not a new row")
	s.Equal(1, result.Succeeded)
}

func (s *ServiceSuite) TestDeleteSubscription() {
	sub, err := s.service.CreateSubscription(s.ctx, s.user, referencetest.Cardiff)
	s.Require().NoError(err)

	s.Run("someone else's subscription is not found", func() {
		err := s.service.DeleteSubscription(s.ctx, domain.NewUserID(), sub.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		de, _ := dErrors.As(err)
		s.Equal("Subscription not found", de.Message)
		s.Equal(1, s.locationCount(s.user))
	})

	s.Require().NoError(s.service.DeleteSubscription(s.ctx, s.user, sub.ID))
	s.Zero(s.locationCount(s.user))

	s.Run("missing subscription is not found", func() {
		err := s.service.DeleteSubscription(s.ctx, s.user, sub.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestDeleteListTypeSubscription() {
	_, err := s.service.UpsertListTypeSubscriptions(s.ctx, s.user, []domain.ListTypeID{referencetest.CivilDaily}, []domain.Language{domain.LanguageEnglish})
	s.Require().NoError(err)
	subs, err := s.store.ListListTypesByUser(s.ctx, s.user)
	s.Require().NoError(err)
	id := subs[0].ID

	err = s.service.DeleteListTypeSubscription(s.ctx, domain.NewUserID(), id)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	s.Require().NoError(s.service.DeleteListTypeSubscription(s.ctx, s.user, id))
	err = s.service.DeleteListTypeSubscription(s.ctx, s.user, id)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestListForUser() {
	_, err := s.service.CreateMultipleSubscriptions(s.ctx, s.user, []string{"1", "2"})
	s.Require().NoError(err)
	_, err = s.service.UpsertListTypeSubscriptions(s.ctx, s.user, []domain.ListTypeID{referencetest.IACDaily}, []domain.Language{domain.LanguageWelsh})
	s.Require().NoError(err)

	got, err := s.service.ListForUser(s.ctx, s.user)
	s.Require().NoError(err)
	s.Len(got.Locations, 2)
	s.Len(got.ListTypes, 1)
}

func (s *ServiceSuite) TestFindRecipients() {
	alice := models.User{ID: domain.NewUserID(), Email: "alice@example.com", FirstName: "Alice"}
	bob := models.User{ID: domain.NewUserID(), Email: "bob@example.com", FirstName: "Bob"}
	carol := models.User{ID: domain.NewUserID(), Email: "carol@example.com", FirstName: "Carol"}
	for _, u := range []models.User{alice, bob, carol} {
		s.store.PutUser(u)
	}

	aliceLoc, err := s.service.CreateSubscription(s.ctx, alice.ID, referencetest.Cardiff)
	s.Require().NoError(err)
	_, err = s.service.UpsertListTypeSubscriptions(s.ctx, alice.ID, []domain.ListTypeID{referencetest.CrownFirm}, []domain.Language{domain.LanguageEnglish})
	s.Require().NoError(err)
	_, err = s.service.UpsertListTypeSubscriptions(s.ctx, bob.ID, []domain.ListTypeID{referencetest.CrownFirm}, []domain.Language{domain.LanguageWelsh})
	s.Require().NoError(err)
	_, err = s.service.UpsertListTypeSubscriptions(s.ctx, carol.ID, []domain.ListTypeID{referencetest.CrownFirm}, []domain.Language{domain.LanguageEnglish})
	s.Require().NoError(err)

	artefact := func(lang domain.Language) *artefactModels.Artefact {
		return &artefactModels.Artefact{LocationID: referencetest.Cardiff, ListTypeID: referencetest.CrownFirm, Language: lang}
	}
	emails := func(rs []models.Recipient) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.Email)
		}
		return out
	}

	s.Run("english list", func() {
		got, err := s.service.FindRecipients(s.ctx, artefact(domain.LanguageEnglish))
		s.Require().NoError(err)
		s.Equal([]string{"alice@example.com", "carol@example.com"}, emails(got))
		s.Equal(aliceLoc.ID, got[0].SubscriptionID, "location match wins")
	})

	s.Run("welsh list", func() {
		got, err := s.service.FindRecipients(s.ctx, artefact(domain.LanguageWelsh))
		s.Require().NoError(err)
		s.Equal([]string{"alice@example.com", "bob@example.com"}, emails(got))
	})

	s.Run("bilingual list reaches every list type subscriber", func() {
		got, err := s.service.FindRecipientsByListType(s.ctx, referencetest.CrownFirm, domain.LanguageBilingual)
		s.Require().NoError(err)
		s.Equal([]string{"alice@example.com", "bob@example.com", "carol@example.com"}, emails(got))
	})

	s.Run("by location only", func() {
		got, err := s.service.FindRecipientsByLocation(s.ctx, referencetest.Oxford)
		s.Require().NoError(err)
		s.Empty(got)
	})
}

func (s *ServiceSuite) TestTxUserIsSet() {
	var seen domain.UserID
	tx := txFunc(func(ctx context.Context, fn func(Store) error) error {
		seen, _ = TxUser(ctx)
		return fn(s.store)
	})
	svc := New(s.store, staticProvider{referencetest.Snapshot()}, WithTx(tx))

	_, err := svc.CreateSubscription(s.ctx, s.user, referencetest.Oxford)
	s.Require().NoError(err)
	s.Equal(s.user, seen)
}

type txFunc func(ctx context.Context, fn func(Store) error) error

func (f txFunc) RunInTx(ctx context.Context, fn func(Store) error) error { return f(ctx, fn) }

type ServiceMockSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	purger  *mocks.MockNotificationLogPurger
	service *Service
	ctx     context.Context
	user    domain.UserID
}

func TestServiceMockSuite(t *testing.T) {
	suite.Run(t, new(ServiceMockSuite))
}

func (s *ServiceMockSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.purger = mocks.NewMockNotificationLogPurger(s.ctrl)
	s.ctx = context.Background()
	s.user = domain.NewUserID()
	s.service = New(s.store, staticProvider{courtsSnapshot(5)},
		WithNotificationLogPurger(s.purger),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	)
}

func (s *ServiceMockSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceMockSuite) TestStoreFailureIsPerItem() {
	s.store.EXPECT().ListLocationsByUser(gomock.Any(), s.user).Return(nil, nil)
	s.store.EXPECT().CreateLocation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sub *models.LocationSubscription) error {
			if sub.LocationID == "2" {
				return errors.New("connection reset")
			}
			return nil
		}).Times(3)

	result, err := s.service.CreateMultipleSubscriptions(s.ctx, s.user, []string{"1", "2", "3"})
	s.Require().NoError(err)
	s.Equal(2, result.Succeeded)
	s.Equal([]models.ItemError{{ID: "2", Message: "could not create subscription"}}, result.Errors)
}

func (s *ServiceMockSuite) TestConcurrentInsertCountsAsHeld() {
	s.store.EXPECT().ListLocationsByUser(gomock.Any(), s.user).Return(nil, nil)
	s.store.EXPECT().CreateLocation(gomock.Any(), gomock.Any()).Return(sentinel.ErrConflict)

	result, err := s.service.CreateMultipleSubscriptions(s.ctx, s.user, []string{"1"})
	s.Require().NoError(err)
	s.Equal(1, result.Succeeded)
}

func (s *ServiceMockSuite) TestListFailureIsInternal() {
	s.store.EXPECT().ListLocationsByUser(gomock.Any(), s.user).Return(nil, errors.New("db down"))

	_, err := s.service.CreateMultipleSubscriptions(s.ctx, s.user, []string{"1"})
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceMockSuite) TestRemoveUser() {
	gomock.InOrder(
		s.purger.EXPECT().DeleteByUser(gomock.Any(), s.user).Return(4, nil),
		s.store.EXPECT().DeleteByUser(gomock.Any(), s.user).Return(3, nil),
	)

	summary, err := s.service.RemoveUser(s.ctx, s.user)
	s.Require().NoError(err)
	s.Equal(&models.RemovalSummary{Subscriptions: 3, NotificationLogs: 4}, summary)
}

func (s *ServiceMockSuite) TestRemoveUserKeepsSubscriptionsWhenPurgeFails() {
	s.purger.EXPECT().DeleteByUser(gomock.Any(), s.user).Return(0, errors.New("db down"))

	_, err := s.service.RemoveUser(s.ctx, s.user)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceMockSuite) TestRecipientLookupFailure() {
	s.store.EXPECT().RecipientsByLocation(gomock.Any(), domain.LocationID("1")).Return(nil, errors.New("db down"))

	_, err := s.service.FindRecipients(s.ctx, &artefactModels.Artefact{LocationID: "1", ListTypeID: 1, Language: domain.LanguageEnglish})
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
