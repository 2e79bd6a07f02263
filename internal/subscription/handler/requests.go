package handler

import (
	"courtpub/pkg/domain"
	dErrors "courtpub/pkg/domain-errors"
)

// CreateLocationsRequest is the body of POST /subscriptions/locations.
type CreateLocationsRequest struct {
	LocationIDs []string `json:"location_ids"`
}

func (r *CreateLocationsRequest) Validate() error {
	if len(r.LocationIDs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "location_ids is required")
	}
	return nil
}

// UpsertListTypesRequest is the body of POST /subscriptions/list-types.
type UpsertListTypesRequest struct {
	ListTypeIDs []int    `json:"list_type_ids"`
	Languages   []string `json:"languages"`

	listTypeIDs []domain.ListTypeID
	languages   []domain.Language
}

// Validate converts the ids and language names. Subscribability of each
// language is checked by the service.
func (r *UpsertListTypesRequest) Validate() error {
	if len(r.ListTypeIDs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "list_type_ids is required")
	}
	if len(r.Languages) == 0 {
		return dErrors.New(dErrors.CodeValidation, "languages is required")
	}
	r.listTypeIDs = make([]domain.ListTypeID, 0, len(r.ListTypeIDs))
	for _, id := range r.ListTypeIDs {
		if id <= 0 {
			return dErrors.New(dErrors.CodeValidation, "list type ids must be positive")
		}
		r.listTypeIDs = append(r.listTypeIDs, domain.ListTypeID(id))
	}
	r.languages = make([]domain.Language, 0, len(r.Languages))
	for _, raw := range r.Languages {
		l, err := domain.ParseLanguage(raw)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, "languages must be ENGLISH or WELSH")
		}
		r.languages = append(r.languages, l)
	}
	return nil
}
