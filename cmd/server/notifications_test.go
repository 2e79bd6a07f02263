package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtpub/internal/platform/config"
)

func TestNotificationGateways(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("log provider only without credentials", func(t *testing.T) {
		gateways, err := notificationGateways(config.NotifyConfig{Provider: "log"}, logger)
		require.NoError(t, err)
		assert.Len(t, gateways, 1)
		_, err = gateways.Get("log")
		assert.NoError(t, err)
	})

	t.Run("configured providers are registered", func(t *testing.T) {
		gateways, err := notificationGateways(config.NotifyConfig{
			NotifyAPIKey:  "courtpub-" + "26785a09-ab16-4eb0-8407-a37497a57506" + "-" + "3d844edf-8d35-48ac-975b-e847b4f122b0",
			NotifyBaseURL: "http://notify.invalid",
			MailgunDomain: "mg.example.org",
			MailgunAPIKey: "key-123",
			MailgunSender: "noreply@example.org",
		}, logger)
		require.NoError(t, err)
		assert.Len(t, gateways, 3)
	})

	t.Run("malformed notify key fails startup", func(t *testing.T) {
		_, err := notificationGateways(config.NotifyConfig{NotifyAPIKey: "too-short"}, logger)
		assert.Error(t, err)
	})
}

func TestNewDispatcherUnknownProvider(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := newDispatcher(config.NotifyConfig{Provider: "carrier-pigeon"}, logger, nil)
	assert.ErrorContains(t, err, "carrier-pigeon")

	d, err := newDispatcher(config.NotifyConfig{Provider: "log", BreakerFailures: 5}, logger, nil)
	require.NoError(t, err)
	assert.NotNil(t, d)
}
