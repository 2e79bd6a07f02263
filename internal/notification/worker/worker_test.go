package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	artefactModels "courtpub/internal/artefact/models"
	"courtpub/internal/events"
	"courtpub/internal/notification/models"
	"courtpub/internal/notification/worker/mocks"
	"courtpub/pkg/domain"
	"courtpub/pkg/platform/sentinel"
)

//go:generate mockgen -source=worker.go -destination=mocks/mocks.go -package=mocks ArtefactFinder,Notifier

func published(id domain.ArtefactID) events.ArtefactPublished {
	return events.ArtefactPublished{
		ArtefactID:  id,
		LocationID:  "101",
		ListTypeID:  1,
		Language:    domain.LanguageEnglish,
		PublishedAt: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
	}
}

func TestHandleNotifiesPublication(t *testing.T) {
	ctrl := gomock.NewController(t)
	finder := mocks.NewMockArtefactFinder(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)

	a := &artefactModels.Artefact{ID: domain.NewArtefactID(), LocationID: "101"}
	finder.EXPECT().FindByID(gomock.Any(), a.ID).Return(a, nil)
	notifier.EXPECT().NotifyPublication(gomock.Any(), a).Return(&models.Summary{Recipients: 1, Sent: 1}, nil)

	w := New(nil, finder, notifier)
	require.NoError(t, w.Handle(context.Background(), published(a.ID)))
}

func TestHandleDropsMissingArtefact(t *testing.T) {
	ctrl := gomock.NewController(t)
	finder := mocks.NewMockArtefactFinder(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)

	id := domain.NewArtefactID()
	finder.EXPECT().FindByID(gomock.Any(), id).Return(nil, sentinel.ErrNotFound)

	assert.NoError(t, New(nil, finder, notifier).Handle(context.Background(), published(id)))
}

func TestHandleSkipsUnmatchedLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	finder := mocks.NewMockArtefactFinder(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)

	a := &artefactModels.Artefact{ID: domain.NewArtefactID(), LocationID: "999", NoMatch: true}
	finder.EXPECT().FindByID(gomock.Any(), a.ID).Return(a, nil)

	assert.NoError(t, New(nil, finder, notifier).Handle(context.Background(), published(a.ID)))
}

func TestHandleReturnsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	finder := mocks.NewMockArtefactFinder(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)

	broken := domain.NewArtefactID()
	finder.EXPECT().FindByID(gomock.Any(), broken).Return(nil, errors.New("connection refused"))
	err := New(nil, finder, notifier).Handle(context.Background(), published(broken))
	assert.ErrorContains(t, err, "load artefact")

	a := &artefactModels.Artefact{ID: domain.NewArtefactID(), LocationID: "101"}
	finder.EXPECT().FindByID(gomock.Any(), a.ID).Return(a, nil)
	notifier.EXPECT().NotifyPublication(gomock.Any(), a).Return(nil, errors.New("recipients unavailable"))
	err = New(nil, finder, notifier).Handle(context.Background(), published(a.ID))
	assert.ErrorContains(t, err, "notify publication")
}

func TestHandleAppliesEventTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	finder := mocks.NewMockArtefactFinder(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)

	id := domain.NewArtefactID()
	finder.EXPECT().FindByID(gomock.Any(), id).DoAndReturn(
		func(ctx context.Context, _ domain.ArtefactID) (*artefactModels.Artefact, error) {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
			return nil, sentinel.ErrNotFound
		})

	w := New(nil, finder, notifier, WithEventTimeout(time.Second))
	require.NoError(t, w.Handle(context.Background(), published(id)))
}

func TestRunConsumesChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	finder := mocks.NewMockArtefactFinder(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)

	pub, src := events.NewChannel(4, nil)
	first := &artefactModels.Artefact{ID: domain.NewArtefactID(), LocationID: "101"}
	second := &artefactModels.Artefact{ID: domain.NewArtefactID(), LocationID: "102"}
	for _, a := range []*artefactModels.Artefact{first, second} {
		finder.EXPECT().FindByID(gomock.Any(), a.ID).Return(a, nil)
		notifier.EXPECT().NotifyPublication(gomock.Any(), a).Return(&models.Summary{}, nil)
	}

	ctx := context.Background()
	require.NoError(t, pub.Publish(ctx, published(first.ID)))
	require.NoError(t, pub.Publish(ctx, published(second.ID)))
	pub.Close()

	require.NoError(t, New(src, finder, notifier).Run(ctx))
}
