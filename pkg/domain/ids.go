package domain

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	dErrors "courtpub/pkg/domain-errors"
)

// UUID-backed identifiers. Distinct types keep an artefact id from being passed
// where a subscription id is expected.
type (
	ArtefactID     uuid.UUID
	UserID         uuid.UUID
	SubscriptionID uuid.UUID
)

// NotificationID is a ULID so notification log rows sort by creation time.
type NotificationID string

// LocationID references a court or tribunal in reference data. It is kept as a
// string because source systems may submit locations not yet onboarded.
type LocationID string

// ListTypeID references a list-type definition.
type ListTypeID int

func NewArtefactID() ArtefactID         { return ArtefactID(uuid.New()) }
func NewUserID() UserID                 { return UserID(uuid.New()) }
func NewSubscriptionID() SubscriptionID { return SubscriptionID(uuid.New()) }
func NewNotificationID() NotificationID { return NotificationID(ulid.Make().String()) }

func (id ArtefactID) String() string     { return uuid.UUID(id).String() }
func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id SubscriptionID) String() string { return uuid.UUID(id).String() }
func (id NotificationID) String() string { return string(id) }
func (id LocationID) String() string     { return string(id) }
func (id ListTypeID) String() string     { return strconv.Itoa(int(id)) }

func (id ArtefactID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id SubscriptionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func parseUUID(kind, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, kind+" is required")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid "+kind)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, kind+" must not be nil")
	}
	return parsed, nil
}

// ParseArtefactID validates and converts a string to ArtefactID.
func ParseArtefactID(raw string) (ArtefactID, error) {
	u, err := parseUUID("artefact id", raw)
	return ArtefactID(u), err
}

// ParseUserID validates and converts a string to UserID.
func ParseUserID(raw string) (UserID, error) {
	u, err := parseUUID("user id", raw)
	return UserID(u), err
}

// ParseSubscriptionID validates and converts a string to SubscriptionID.
func ParseSubscriptionID(raw string) (SubscriptionID, error) {
	u, err := parseUUID("subscription id", raw)
	return SubscriptionID(u), err
}

// ParseLocationID trims and rejects empty location ids.
func ParseLocationID(raw string) (LocationID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", dErrors.New(dErrors.CodeValidation, "location id is required")
	}
	return LocationID(raw), nil
}

// ParseListTypeID accepts positive integer strings.
func ParseListTypeID(raw string) (ListTypeID, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeValidation, "invalid list type id")
	}
	if n <= 0 {
		return 0, dErrors.New(dErrors.CodeValidation, "list type id must be positive")
	}
	return ListTypeID(n), nil
}
