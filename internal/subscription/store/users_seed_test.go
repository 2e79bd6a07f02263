package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtpub/internal/subscription/models"
	"courtpub/pkg/domain"
)

const usersYAML = `
- id: 5f0c1b9e-1d7a-4c1e-9a53-2b0f4f1b6c01
  email: jo.bloggs@example.com
  first_name: Jo
  surname: Bloggs
- id: 5f0c1b9e-1d7a-4c1e-9a53-2b0f4f1b6c02
  email: clerk@justice.gov.uk
`

func TestLoadUsersYAML(t *testing.T) {
	users, err := LoadUsersYAML(strings.NewReader(usersYAML))
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "jo.bloggs@example.com", users[0].Email)
	assert.Equal(t, "Bloggs", users[0].Surname)
	assert.Empty(t, users[1].FirstName)

	t.Run("empty document", func(t *testing.T) {
		users, err := LoadUsersYAML(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	for name, doc := range map[string]string{
		"bad id":        "- id: nope\n  email: a@example.com\n",
		"missing email": "- id: 5f0c1b9e-1d7a-4c1e-9a53-2b0f4f1b6c01\n",
		"duplicate id": "- id: 5f0c1b9e-1d7a-4c1e-9a53-2b0f4f1b6c01\n  email: a@example.com\n" +
			"- id: 5f0c1b9e-1d7a-4c1e-9a53-2b0f4f1b6c01\n  email: b@example.com\n",
		"unknown field": "- id: 5f0c1b9e-1d7a-4c1e-9a53-2b0f4f1b6c01\n  email: a@example.com\n  role: admin\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadUsersYAML(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestSeededUsersAreRecipients(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(usersYAML), 0o600))

	s := NewInMemoryStore()
	n, err := s.SeedUsersFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	userID, err := domain.ParseUserID("5f0c1b9e-1d7a-4c1e-9a53-2b0f4f1b6c01")
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.CreateLocation(ctx, &models.LocationSubscription{
		ID:         domain.NewSubscriptionID(),
		UserID:     userID,
		LocationID: "101",
		CreatedAt:  time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
	}))

	recipients, err := s.RecipientsByLocation(ctx, "101")
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, "jo.bloggs@example.com", recipients[0].Email)

	_, err = s.SeedUsersFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
