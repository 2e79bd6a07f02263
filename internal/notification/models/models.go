package models

import (
	"time"

	"courtpub/pkg/domain"
	dErrors "courtpub/pkg/domain-errors"
)

// Status of a notification log row. Rows move from PENDING to SENT or FAILED
// exactly once.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSent    Status = "SENT"
	StatusFailed  Status = "FAILED"
)

// NotificationLog records one attempted delivery of a publication to one
// subscriber.
type NotificationLog struct {
	ID             domain.NotificationID
	SubscriptionID domain.SubscriptionID
	UserID         domain.UserID
	PublicationID  domain.ArtefactID
	LocationID     domain.LocationID
	Status         Status
	// GatewayID is the delivery id the email gateway returned.
	GatewayID    string
	ErrorMessage string
	CreatedAt    time.Time
	SentAt       *time.Time
	FailedAt     *time.Time
}

// NewPendingLog creates the row written before a send is attempted.
func NewPendingLog(subID domain.SubscriptionID, userID domain.UserID, publicationID domain.ArtefactID, locationID domain.LocationID, now time.Time) (*NotificationLog, error) {
	if subID.IsNil() || userID.IsNil() || publicationID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "subscription, user and publication ids are required")
	}
	return &NotificationLog{
		ID:             domain.NewNotificationID(),
		SubscriptionID: subID,
		UserID:         userID,
		PublicationID:  publicationID,
		LocationID:     locationID,
		Status:         StatusPending,
		CreatedAt:      now,
	}, nil
}

// MarkSent records a delivery the gateway accepted.
func (n *NotificationLog) MarkSent(gatewayID string, at time.Time) error {
	if n.Status != StatusPending {
		return dErrors.New(dErrors.CodeInvalidState, "notification is already "+string(n.Status))
	}
	if gatewayID == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "gateway id is required")
	}
	n.Status = StatusSent
	n.GatewayID = gatewayID
	n.SentAt = &at
	return nil
}

// MarkFailed records a delivery that exhausted its retries.
func (n *NotificationLog) MarkFailed(msg string, at time.Time) error {
	if n.Status != StatusPending {
		return dErrors.New(dErrors.CodeInvalidState, "notification is already "+string(n.Status))
	}
	n.Status = StatusFailed
	n.ErrorMessage = msg
	n.FailedAt = &at
	return nil
}

// IsTerminal reports whether the row will never change again.
func (n *NotificationLog) IsTerminal() bool {
	return n.Status == StatusSent || n.Status == StatusFailed
}

// Summary reports the outcome of notifying one publication.
type Summary struct {
	Recipients int
	Sent       int
	Failed     int
	// Skipped counts recipients already notified about this publication.
	Skipped int
}

// PDF is a downloadable rendering of a publication.
type PDF struct {
	Size int64
	URL  string
}
