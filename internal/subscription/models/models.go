package models

import (
	"slices"
	"time"

	"courtpub/pkg/domain"
	dErrors "courtpub/pkg/domain-errors"
)

// LocationSubscription is a user's standing interest in every list published
// for one court or tribunal.
type LocationSubscription struct {
	ID         domain.SubscriptionID
	UserID     domain.UserID
	LocationID domain.LocationID
	CreatedAt  time.Time
}

// ListTypeSubscription is a user's interest in one list type, restricted to
// the languages they want to hear about.
type ListTypeSubscription struct {
	ID         domain.SubscriptionID
	UserID     domain.UserID
	ListTypeID domain.ListTypeID
	Languages  []domain.Language
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewListTypeSubscription checks the language set is non-empty and contains
// only subscribable languages.
func NewListTypeSubscription(id domain.SubscriptionID, userID domain.UserID, listTypeID domain.ListTypeID, languages []domain.Language, now time.Time) (*ListTypeSubscription, error) {
	if err := ValidateLanguages(languages); err != nil {
		return nil, err
	}
	return &ListTypeSubscription{
		ID:         id,
		UserID:     userID,
		ListTypeID: listTypeID,
		Languages:  slices.Clone(languages),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// ValidateLanguages rejects an empty set and anything other than ENGLISH or
// WELSH.
func ValidateLanguages(languages []domain.Language) error {
	if len(languages) == 0 {
		return dErrors.New(dErrors.CodeValidation, "at least one language is required")
	}
	for _, l := range languages {
		if !l.IsSubscribable() {
			return dErrors.New(dErrors.CodeValidation, "language must be ENGLISH or WELSH: "+string(l))
		}
	}
	return nil
}

// Matches reports whether the subscription wants an artefact in lang.
func (s *ListTypeSubscription) Matches(lang domain.Language) bool {
	for _, want := range AcceptedLanguages(lang) {
		if slices.Contains(s.Languages, want) {
			return true
		}
	}
	return false
}

// AcceptedLanguages lists the subscription languages an artefact in lang is
// delivered to. A bilingual artefact serves both.
func AcceptedLanguages(lang domain.Language) []domain.Language {
	switch lang {
	case domain.LanguageBilingual:
		return []domain.Language{domain.LanguageEnglish, domain.LanguageWelsh}
	case domain.LanguageEnglish, domain.LanguageWelsh:
		return []domain.Language{lang}
	default:
		return nil
	}
}

// User is the part of an account record needed to address a notification.
// Accounts are owned by the account service.
type User struct {
	ID        domain.UserID
	Email     string
	FirstName string
	Surname   string
}

// Recipient is a user matched to a publication through one of their
// subscriptions.
type Recipient struct {
	UserID         domain.UserID
	Email          string
	FirstName      string
	Surname        string
	SubscriptionID domain.SubscriptionID
}

// UserSubscriptions is everything one user is subscribed to.
type UserSubscriptions struct {
	Locations []*LocationSubscription
	ListTypes []*ListTypeSubscription
}

// ItemError is one rejected entry of a batch request.
type ItemError struct {
	ID      string
	Message string
}

// BatchResult reports a partial-failure batch. Entries already held count as
// succeeded.
type BatchResult struct {
	Succeeded int
	Failed    int
	Errors    []ItemError
}

// Succeed records a successful entry.
func (r *BatchResult) Succeed() {
	r.Succeeded++
}

// Fail records a rejected entry.
func (r *BatchResult) Fail(id, msg string) {
	r.Failed++
	r.Errors = append(r.Errors, ItemError{ID: id, Message: msg})
}

// RemovalSummary reports an administrative user deletion.
type RemovalSummary struct {
	Subscriptions    int
	NotificationLogs int
}
