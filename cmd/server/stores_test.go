package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtpub/internal/platform/config"
	"courtpub/internal/subscription/models"
	"courtpub/pkg/domain"
)

func TestMemorySubscriptionsSeedsUsers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	t.Run("unset path leaves the store empty", func(t *testing.T) {
		s, err := memorySubscriptions(config.SubscriptionConfig{}, logger)
		require.NoError(t, err)
		userID := domain.NewUserID()
		require.NoError(t, s.CreateLocation(ctx, &models.LocationSubscription{ID: domain.NewSubscriptionID(), UserID: userID, LocationID: "7"}))
		recipients, err := s.RecipientsByLocation(ctx, "7")
		require.NoError(t, err)
		assert.Empty(t, recipients)
	})

	t.Run("seeded users receive notifications", func(t *testing.T) {
		s, err := memorySubscriptions(config.SubscriptionConfig{UsersSeedPath: filepath.Join("..", "..", "configs", "users.yaml")}, logger)
		require.NoError(t, err)
		userID, err := domain.ParseUserID("5f0c1b9e-1d7a-4c1e-9a53-2b0f4f1b6c01")
		require.NoError(t, err)
		require.NoError(t, s.CreateLocation(ctx, &models.LocationSubscription{ID: domain.NewSubscriptionID(), UserID: userID, LocationID: "7"}))
		recipients, err := s.RecipientsByLocation(ctx, "7")
		require.NoError(t, err)
		require.Len(t, recipients, 1)
		assert.Equal(t, "jo.bloggs@example.com", recipients[0].Email)
	})

	t.Run("bad seed fails startup", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.yaml")
		require.NoError(t, os.WriteFile(path, []byte("- id: nope\n"), 0o600))
		_, err := memorySubscriptions(config.SubscriptionConfig{UsersSeedPath: path}, logger)
		assert.Error(t, err)
	})
}
