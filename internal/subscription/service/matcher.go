package service

import (
	"context"

	artefactModels "courtpub/internal/artefact/models"
	"courtpub/internal/subscription/models"
	"courtpub/pkg/domain"
	dErrors "courtpub/pkg/domain-errors"
)

// FindRecipientsByListType returns users subscribed to listTypeID whose
// language set contains language. A bilingual list reaches every subscriber
// of the list type.
func (s *Service) FindRecipientsByListType(ctx context.Context, listTypeID domain.ListTypeID, language domain.Language) ([]models.Recipient, error) {
	accepted := models.AcceptedLanguages(language)
	if len(accepted) == 0 {
		return nil, nil
	}
	recipients, err := s.store.RecipientsByListType(ctx, listTypeID, accepted)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find list type subscribers")
	}
	return recipients, nil
}

// FindRecipientsByLocation returns users subscribed to locationID.
func (s *Service) FindRecipientsByLocation(ctx context.Context, locationID domain.LocationID) ([]models.Recipient, error) {
	recipients, err := s.store.RecipientsByLocation(ctx, locationID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find location subscribers")
	}
	return recipients, nil
}

// FindRecipients returns every user who should hear about a, once each. When a
// user matches both ways the location subscription is the one recorded.
func (s *Service) FindRecipients(ctx context.Context, a *artefactModels.Artefact) ([]models.Recipient, error) {
	byLocation, err := s.FindRecipientsByLocation(ctx, a.LocationID)
	if err != nil {
		return nil, err
	}
	byListType, err := s.FindRecipientsByListType(ctx, a.ListTypeID, a.Language)
	if err != nil {
		return nil, err
	}
	return mergeRecipients(byLocation, byListType), nil
}

func mergeRecipients(lists ...[]models.Recipient) []models.Recipient {
	seen := make(map[domain.UserID]struct{})
	var out []models.Recipient
	for _, list := range lists {
		for _, r := range list {
			if _, ok := seen[r.UserID]; ok {
				continue
			}
			seen[r.UserID] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}
