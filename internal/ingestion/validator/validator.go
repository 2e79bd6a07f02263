// Package validator checks inbound publications against structural, date and
// reference-data rules. Validation is pure: it reads the request and a
// reference snapshot and returns every failure it finds.
package validator

import (
	"fmt"
	"strings"
	"time"

	"courtpub/internal/ingestion/models"
	"courtpub/internal/reference"
	"courtpub/pkg/domain"
	dErrors "courtpub/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

// Parsed holds the typed values of a valid request.
type Parsed struct {
	Provenance  domain.Provenance
	LocationID  domain.LocationID
	ListType    reference.ListType
	ContentDate time.Time
	Sensitivity domain.Sensitivity
	Language    domain.Language
	DisplayFrom time.Time
	DisplayTo   time.Time
	IsFlatFile  bool
}

// Result is the outcome of Validate. LocationExists and ListTypeID are filled
// in whenever they could be resolved, even for invalid requests.
type Result struct {
	IsValid        bool
	Errors         []models.FieldError
	LocationExists bool
	ListTypeID     domain.ListTypeID
	Parsed         Parsed
}

// Validator holds the configured size limit and payload validators.
type Validator struct {
	maxBodyBytes int64
	payloads     *Registry
}

// New returns a validator. A nil registry means no payload checks.
func New(maxBodyBytes int64, payloads *Registry) *Validator {
	if payloads == nil {
		payloads = NewRegistry()
	}
	return &Validator{maxBodyBytes: maxBodyBytes, payloads: payloads}
}

// Validate checks req. An unknown court is not a failure: it is reported
// through LocationExists so the artefact can be stored as unmatched.
func (v *Validator) Validate(req models.Request, rawBodySizeBytes int64, snapshot *reference.Snapshot) Result {
	var (
		res  Result
		errs fieldErrors
	)

	if v.maxBodyBytes > 0 && rawBodySizeBytes > v.maxBodyBytes {
		errs.add("body", fmt.Sprintf("must not exceed %d bytes", v.maxBodyBytes))
	} else if req.Malformed != "" {
		errs.add("body", req.Malformed)
	}

	// Provenance
	rawProvenance := strings.TrimSpace(req.Provenance)
	if rawProvenance == "" {
		errs.add("provenance", "is required")
	} else {
		res.Parsed.Provenance = domain.MapProvenance(rawProvenance)
	}

	// Court
	courtID := strings.TrimSpace(req.CourtID)
	if courtID == "" {
		errs.add("court_id", "is required")
	} else {
		res.Parsed.LocationID = domain.LocationID(courtID)
		res.LocationExists = snapshot.LocationExists(res.Parsed.LocationID)
	}

	// List type is mandatory and must resolve
	listTypeName := strings.TrimSpace(req.ListType)
	if listTypeName == "" {
		errs.add("list_type", "is required")
	} else if lt, ok := snapshot.ListTypeByName(listTypeName); !ok {
		errs.add("list_type", "is not a known list type")
	} else {
		res.ListTypeID = lt.ID
		res.Parsed.ListType = lt
		if res.Parsed.Provenance != "" && !lt.AllowsProvenance(res.Parsed.Provenance) {
			errs.add("provenance", fmt.Sprintf("%s may not publish %s", res.Parsed.Provenance, lt.Name))
		}
	}

	// Dates
	if t, ok := errs.parseDate("publication_date", req.PublicationDate, false); ok {
		res.Parsed.ContentDate = t
	}
	from, fromOK := errs.parseDate("display_from", req.DisplayFrom, false)
	to, toOK := errs.parseDate("display_to", req.DisplayTo, true)
	if fromOK && toOK && from.After(to) {
		errs.add("display_to", "must not be before display_from")
	}
	res.Parsed.DisplayFrom, res.Parsed.DisplayTo = from, to

	// Enums
	res.Parsed.Sensitivity, _ = parseEnum(&errs, "sensitivity", req.Sensitivity, domain.ParseSensitivity)
	res.Parsed.Language, _ = parseEnum(&errs, "language", req.Language, domain.ParseLanguage)

	// Content
	res.Parsed.IsFlatFile = req.IsFlatFile
	if req.IsFlatFile {
		if len(req.File) == 0 {
			errs.add("file", "is required for flat file publications")
		}
	} else if res.ListTypeID != 0 {
		if pv, ok := v.payloads.Lookup(res.ListTypeID); ok {
			errs = append(errs, pv.ValidatePayload(req.Payload)...)
		}
	}

	res.Errors = errs
	res.IsValid = len(errs) == 0
	return res
}

type fieldErrors []models.FieldError

func (e *fieldErrors) add(field, message string) {
	*e = append(*e, models.FieldError{Field: field, Message: message})
}

// parseDate accepts an ISO date or an RFC 3339 timestamp. A date-only
// endOfDay value means the last instant of that day in UTC, so a window
// ending on a date includes the whole day.
func (e *fieldErrors) parseDate(field, raw string, endOfDay bool) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		e.add(field, "is required")
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		e.add(field, "must be an ISO date (YYYY-MM-DD) or RFC 3339 timestamp")
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, true
}

func parseEnum[T any](e *fieldErrors, field, raw string, parse func(string) (T, error)) (T, bool) {
	var zero T
	if strings.TrimSpace(raw) == "" {
		e.add(field, "is required")
		return zero, false
	}
	v, err := parse(raw)
	if err != nil {
		msg := "is invalid"
		if de, ok := dErrors.As(err); ok {
			msg = de.Message
		}
		e.add(field, msg)
		return zero, false
	}
	return v, true
}
