// Package handler exposes notification delivery history to administrators.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"courtpub/internal/notification/models"
	"courtpub/pkg/domain"
	dErrors "courtpub/pkg/domain-errors"
	"courtpub/pkg/platform/httputil"
	"courtpub/pkg/requestcontext"
)

// LogLister reads notification logs.
type LogLister interface {
	ListByPublication(ctx context.Context, publicationID domain.ArtefactID) ([]*models.NotificationLog, error)
}

type Handler struct {
	logs   LogLister
	logger *slog.Logger
}

func New(logs LogLister, logger *slog.Logger) *Handler {
	return &Handler{logs: logs, logger: logger}
}

// RegisterAdmin mounts the endpoints. The router must require the
// SYSTEM_ADMIN role.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/admin/publications/{artefactId}/notifications", h.HandleListByPublication)
}

type NotificationResponse struct {
	ID             string     `json:"id"`
	SubscriptionID string     `json:"subscription_id"`
	UserID         string     `json:"user_id"`
	LocationID     string     `json:"location_id"`
	Status         string     `json:"status"`
	GatewayID      string     `json:"gateway_id,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	FailedAt       *time.Time `json:"failed_at,omitempty"`
}

type PublicationNotificationsResponse struct {
	PublicationID string                 `json:"publication_id"`
	Notifications []NotificationResponse `json:"notifications"`
	Sent          int                    `json:"sent"`
	Failed        int                    `json:"failed"`
	Pending       int                    `json:"pending"`
}

// HandleListByPublication handles GET /admin/publications/{artefactId}/notifications.
func (h *Handler) HandleListByPublication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseArtefactID(chi.URLParam(r, "artefactId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	logs, err := h.logs.ListByPublication(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list notifications",
			"artefact_id", id.String(),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list notifications"))
		return
	}

	resp := PublicationNotificationsResponse{
		PublicationID: id.String(),
		Notifications: make([]NotificationResponse, 0, len(logs)),
	}
	for _, n := range logs {
		switch n.Status {
		case models.StatusSent:
			resp.Sent++
		case models.StatusFailed:
			resp.Failed++
		default:
			resp.Pending++
		}
		resp.Notifications = append(resp.Notifications, NotificationResponse{
			ID:             n.ID.String(),
			SubscriptionID: n.SubscriptionID.String(),
			UserID:         n.UserID.String(),
			LocationID:     string(n.LocationID),
			Status:         string(n.Status),
			GatewayID:      n.GatewayID,
			ErrorMessage:   n.ErrorMessage,
			CreatedAt:      n.CreatedAt,
			SentAt:         n.SentAt,
			FailedAt:       n.FailedAt,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
