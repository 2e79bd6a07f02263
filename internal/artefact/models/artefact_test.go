package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtpub/pkg/domain"
	dErrors "courtpub/pkg/domain-errors"
)

func validParams() NewArtefactParams {
	from := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	return NewArtefactParams{
		ID:          domain.NewArtefactID(),
		LocationID:  "101",
		ListTypeID:  1,
		ContentDate: from,
		Sensitivity: domain.SensitivityPublic,
		Language:    domain.LanguageEnglish,
		DisplayFrom: from,
		DisplayTo:   from.Add(24*time.Hour - time.Nanosecond),
		Provenance:  domain.ProvenanceManualUpload,
	}
}

func TestNewArtefact(t *testing.T) {
	t.Run("valid params", func(t *testing.T) {
		a, err := NewArtefact(validParams())
		require.NoError(t, err)
		assert.Equal(t, domain.LocationID("101"), a.LocationID)
	})

	t.Run("same-instant window is allowed", func(t *testing.T) {
		p := validParams()
		p.DisplayTo = p.DisplayFrom
		_, err := NewArtefact(p)
		require.NoError(t, err)
	})

	cases := map[string]func(p *NewArtefactParams){
		"nil id":             func(p *NewArtefactParams) { p.ID = domain.ArtefactID{} },
		"missing location":   func(p *NewArtefactParams) { p.LocationID = "" },
		"missing list type":  func(p *NewArtefactParams) { p.ListTypeID = 0 },
		"bad sensitivity":    func(p *NewArtefactParams) { p.Sensitivity = "SECRET" },
		"bad language":       func(p *NewArtefactParams) { p.Language = "FRENCH" },
		"missing provenance": func(p *NewArtefactParams) { p.Provenance = "" },
		"inverted window":    func(p *NewArtefactParams) { p.DisplayFrom = p.DisplayTo.Add(time.Second) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validParams()
			mutate(&p)
			_, err := NewArtefact(p)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		})
	}
}

func TestInWindow(t *testing.T) {
	a, err := NewArtefact(validParams())
	require.NoError(t, err)

	assert.True(t, a.InWindow(a.DisplayFrom), "window start is inclusive")
	assert.True(t, a.InWindow(a.DisplayTo), "window end is inclusive")
	assert.False(t, a.InWindow(a.DisplayFrom.Add(-time.Nanosecond)))
	assert.False(t, a.InWindow(a.DisplayTo.Add(time.Nanosecond)))
}
