// Package models holds the ingestion request and response shapes and the
// append-only ingestion log.
package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"courtpub/pkg/domain"
)

// Request is an inbound publication from a source system. Every field is
// carried as submitted; the validator parses and checks them.
type Request struct {
	Provenance      string `json:"provenance"`
	CourtID         string `json:"court_id"`
	ListType        string `json:"list_type"`
	PublicationDate string `json:"publication_date"`
	Sensitivity     string `json:"sensitivity"`
	Language        string `json:"language"`
	DisplayFrom     string `json:"display_from"`
	DisplayTo       string `json:"display_to"`
	IsFlatFile      bool   `json:"is_flat_file"`
	// Payload is the structured list for JSON publications.
	Payload json.RawMessage `json:"payload,omitempty"`
	// File is the opaque content of a flat-file publication, base64 on the wire.
	File []byte `json:"file,omitempty"`

	// Malformed is set by the transport when the body could not be decoded.
	Malformed string `json:"-"`
}

// Content returns the bytes stored on the artefact.
func (r Request) Content() []byte {
	if r.IsFlatFile {
		return r.File
	}
	return r.Payload
}

// FieldError is one validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// JoinErrors renders errs as "field: message; field: message".
func JoinErrors(errs []FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}

const (
	MessageIngested        = "Blob ingested and published successfully"
	MessageIngestedNoMatch = "Blob ingested but location could not be matched"
	MessageValidation      = "Validation failed"
	MessageInternal        = "internal error"
)

// Response is the structured result of one ingestion call.
type Response struct {
	Success    bool         `json:"success"`
	ArtefactID string       `json:"artefact_id,omitempty"`
	NoMatch    *bool        `json:"no_match,omitempty"`
	Message    string       `json:"message"`
	Errors     []FieldError `json:"errors,omitempty"`
}

// Outcome classifies a Response for status mapping and metrics.
func (r Response) Outcome() Status {
	switch {
	case r.Success:
		return StatusSuccess
	case len(r.Errors) > 0:
		return StatusValidationError
	default:
		return StatusSystemError
	}
}

// Status is the outcome recorded in the ingestion log.
type Status string

const (
	StatusSuccess         Status = "SUCCESS"
	StatusValidationError Status = "VALIDATION_ERROR"
	StatusSystemError     Status = "SYSTEM_ERROR"
)

// IngestionLog is one append-only row per ingestion attempt. ArtefactID is
// set exactly when Status is SUCCESS; the constructors below keep it so.
type IngestionLog struct {
	ID           uuid.UUID
	Timestamp    time.Time
	SourceSystem string
	CourtID      string
	Status       Status
	ErrorMessage string
	ArtefactID   *domain.ArtefactID
}

func NewSuccessLog(now time.Time, req Request, artefactID domain.ArtefactID) IngestionLog {
	return IngestionLog{
		ID:           uuid.New(),
		Timestamp:    now,
		SourceSystem: req.Provenance,
		CourtID:      req.CourtID,
		Status:       StatusSuccess,
		ArtefactID:   &artefactID,
	}
}

func NewValidationErrorLog(now time.Time, req Request, errs []FieldError) IngestionLog {
	return IngestionLog{
		ID:           uuid.New(),
		Timestamp:    now,
		SourceSystem: req.Provenance,
		CourtID:      req.CourtID,
		Status:       StatusValidationError,
		ErrorMessage: JoinErrors(errs),
	}
}

func NewSystemErrorLog(now time.Time, req Request, cause string) IngestionLog {
	return IngestionLog{
		ID:           uuid.New(),
		Timestamp:    now,
		SourceSystem: req.Provenance,
		CourtID:      req.CourtID,
		Status:       StatusSystemError,
		ErrorMessage: cause,
	}
}
