package handler

import (
	"time"

	"courtpub/internal/subscription/models"
)

type LocationSubscriptionResponse struct {
	ID         string    `json:"id"`
	LocationID string    `json:"location_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type ListTypeSubscriptionResponse struct {
	ID         string    `json:"id"`
	ListTypeID int       `json:"list_type_id"`
	Languages  []string  `json:"languages"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type SubscriptionsResponse struct {
	Locations []LocationSubscriptionResponse `json:"locations"`
	ListTypes []ListTypeSubscriptionResponse `json:"list_types"`
}

type ItemErrorResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type BatchResponse struct {
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Errors    []ItemErrorResponse `json:"errors"`
}

type RemovalResponse struct {
	Subscriptions    int `json:"subscriptions_deleted"`
	NotificationLogs int `json:"notification_logs_deleted"`
}

func toLocationResponse(sub *models.LocationSubscription) LocationSubscriptionResponse {
	return LocationSubscriptionResponse{
		ID:         sub.ID.String(),
		LocationID: sub.LocationID.String(),
		CreatedAt:  sub.CreatedAt,
	}
}

func toSubscriptionsResponse(subs *models.UserSubscriptions) SubscriptionsResponse {
	resp := SubscriptionsResponse{
		Locations: make([]LocationSubscriptionResponse, 0, len(subs.Locations)),
		ListTypes: make([]ListTypeSubscriptionResponse, 0, len(subs.ListTypes)),
	}
	for _, sub := range subs.Locations {
		resp.Locations = append(resp.Locations, toLocationResponse(sub))
	}
	for _, sub := range subs.ListTypes {
		langs := make([]string, 0, len(sub.Languages))
		for _, l := range sub.Languages {
			langs = append(langs, string(l))
		}
		resp.ListTypes = append(resp.ListTypes, ListTypeSubscriptionResponse{
			ID:         sub.ID.String(),
			ListTypeID: int(sub.ListTypeID),
			Languages:  langs,
			CreatedAt:  sub.CreatedAt,
			UpdatedAt:  sub.UpdatedAt,
		})
	}
	return resp
}

func toBatchResponse(r *models.BatchResult) BatchResponse {
	resp := BatchResponse{
		Succeeded: r.Succeeded,
		Failed:    r.Failed,
		Errors:    make([]ItemErrorResponse, 0, len(r.Errors)),
	}
	for _, e := range r.Errors {
		resp.Errors = append(resp.Errors, ItemErrorResponse{ID: e.ID, Message: e.Message})
	}
	return resp
}
