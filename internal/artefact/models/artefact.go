package models

import (
	"time"

	"courtpub/pkg/domain"
	dErrors "courtpub/pkg/domain-errors"
)

// Artefact is one published court or tribunal list. Artefacts are immutable
// once created; an artefact past its display window still exists but is no
// longer shown.
type Artefact struct {
	ID          domain.ArtefactID
	LocationID  domain.LocationID
	ListTypeID  domain.ListTypeID
	ContentDate time.Time
	Sensitivity domain.Sensitivity
	Language    domain.Language
	DisplayFrom time.Time
	DisplayTo   time.Time
	Provenance  domain.Provenance
	IsFlatFile  bool
	// NoMatch is set when LocationID was not in reference data at ingestion.
	NoMatch   bool
	Payload   []byte
	CreatedAt time.Time
}

// NewArtefactParams are the inputs for a new artefact.
type NewArtefactParams struct {
	ID          domain.ArtefactID
	LocationID  domain.LocationID
	ListTypeID  domain.ListTypeID
	ContentDate time.Time
	Sensitivity domain.Sensitivity
	Language    domain.Language
	DisplayFrom time.Time
	DisplayTo   time.Time
	Provenance  domain.Provenance
	IsFlatFile  bool
	NoMatch     bool
	Payload     []byte
	CreatedAt   time.Time
}

// NewArtefact creates an Artefact with domain invariant checks.
func NewArtefact(p NewArtefactParams) (*Artefact, error) {
	if p.ID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "artefact id is required")
	}
	if p.LocationID == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "location id is required")
	}
	if p.ListTypeID <= 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "list type id is required")
	}
	if !p.Sensitivity.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid sensitivity")
	}
	if !p.Language.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid language")
	}
	if p.Provenance == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "provenance is required")
	}
	if p.DisplayFrom.IsZero() || p.DisplayTo.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "display window is required")
	}
	if p.DisplayFrom.After(p.DisplayTo) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "display_from must not be after display_to")
	}

	return &Artefact{
		ID:          p.ID,
		LocationID:  p.LocationID,
		ListTypeID:  p.ListTypeID,
		ContentDate: p.ContentDate,
		Sensitivity: p.Sensitivity,
		Language:    p.Language,
		DisplayFrom: p.DisplayFrom,
		DisplayTo:   p.DisplayTo,
		Provenance:  p.Provenance,
		IsFlatFile:  p.IsFlatFile,
		NoMatch:     p.NoMatch,
		Payload:     p.Payload,
		CreatedAt:   p.CreatedAt,
	}, nil
}

// InWindow reports whether now falls inside the inclusive display window.
func (a *Artefact) InWindow(now time.Time) bool {
	return !now.Before(a.DisplayFrom) && !now.After(a.DisplayTo)
}
