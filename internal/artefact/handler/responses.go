package handler

import (
	"time"

	"courtpub/internal/artefact/models"
	"courtpub/internal/pagination"
)

// MetadataResponse describes an artefact without its payload.
type MetadataResponse struct {
	ArtefactID  string    `json:"artefact_id"`
	LocationID  string    `json:"location_id"`
	ListTypeID  int       `json:"list_type_id"`
	ContentDate time.Time `json:"content_date"`
	Sensitivity string    `json:"sensitivity"`
	Language    string    `json:"language"`
	DisplayFrom time.Time `json:"display_from"`
	DisplayTo   time.Time `json:"display_to"`
	Provenance  string    `json:"provenance"`
	IsFlatFile  bool      `json:"is_flat_file"`
	NoMatch     bool      `json:"no_match"`
	PayloadSize int       `json:"payload_size"`
}

type ListResponse struct {
	Items      []MetadataResponse    `json:"items"`
	Pagination pagination.Pagination `json:"pagination"`
}

func toMetadataResponse(a *models.Artefact) MetadataResponse {
	return MetadataResponse{
		ArtefactID:  a.ID.String(),
		LocationID:  a.LocationID.String(),
		ListTypeID:  int(a.ListTypeID),
		ContentDate: a.ContentDate,
		Sensitivity: string(a.Sensitivity),
		Language:    string(a.Language),
		DisplayFrom: a.DisplayFrom,
		DisplayTo:   a.DisplayTo,
		Provenance:  string(a.Provenance),
		IsFlatFile:  a.IsFlatFile,
		NoMatch:     a.NoMatch,
		PayloadSize: len(a.Payload),
	}
}
