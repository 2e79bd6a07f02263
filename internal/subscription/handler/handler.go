package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"courtpub/internal/subscription/models"
	"courtpub/pkg/domain"
	dErrors "courtpub/pkg/domain-errors"
	"courtpub/pkg/platform/httputil"
	"courtpub/pkg/requestcontext"
)

// Service defines the subscription operations the handler needs.
type Service interface {
	CreateSubscription(ctx context.Context, userID domain.UserID, locationID domain.LocationID) (*models.LocationSubscription, error)
	CreateMultipleSubscriptions(ctx context.Context, userID domain.UserID, locationIDs []string) (*models.BatchResult, error)
	UpsertListTypeSubscriptions(ctx context.Context, userID domain.UserID, listTypeIDs []domain.ListTypeID, languages []domain.Language) (*models.BatchResult, error)
	DeleteSubscription(ctx context.Context, userID domain.UserID, id domain.SubscriptionID) error
	DeleteListTypeSubscription(ctx context.Context, userID domain.UserID, id domain.SubscriptionID) error
	ListForUser(ctx context.Context, userID domain.UserID) (*models.UserSubscriptions, error)
	RemoveUser(ctx context.Context, userID domain.UserID) (*models.RemovalSummary, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the signed-in user's subscription endpoints. The router
// must require an authenticated viewer.
func (h *Handler) Register(r chi.Router) {
	r.Get("/subscriptions", h.HandleList)
	r.Post("/subscriptions/locations", h.HandleCreateLocations)
	r.Post("/subscriptions/locations/{locationId}", h.HandleCreateLocation)
	r.Post("/subscriptions/list-types", h.HandleUpsertListTypes)
	r.Delete("/subscriptions/list-types/{id}", h.HandleDeleteListType)
	r.Delete("/subscriptions/{id}", h.HandleDelete)
}

// RegisterAdmin mounts administrative endpoints. The router must require the
// SYSTEM_ADMIN role.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Delete("/admin/users/{userId}/subscriptions", h.HandleRemoveUser)
}

// HandleList handles GET /subscriptions.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subs, err := h.service.ListForUser(ctx, requestcontext.Viewer(ctx).UserID)
	if err != nil {
		h.writeServiceError(ctx, w, "list subscriptions", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSubscriptionsResponse(subs))
}

// HandleCreateLocation handles POST /subscriptions/locations/{locationId}.
func (h *Handler) HandleCreateLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locationID, err := domain.ParseLocationID(chi.URLParam(r, "locationId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sub, err := h.service.CreateSubscription(ctx, requestcontext.Viewer(ctx).UserID, locationID)
	if err != nil {
		h.writeServiceError(ctx, w, "create subscription", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toLocationResponse(sub))
}

// HandleCreateLocations handles POST /subscriptions/locations.
func (h *Handler) HandleCreateLocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateLocationsRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	result, err := h.service.CreateMultipleSubscriptions(ctx, requestcontext.Viewer(ctx).UserID, req.LocationIDs)
	if err != nil {
		h.writeServiceError(ctx, w, "create subscriptions", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toBatchResponse(result))
}

// HandleUpsertListTypes handles POST /subscriptions/list-types.
func (h *Handler) HandleUpsertListTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[UpsertListTypesRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	result, err := h.service.UpsertListTypeSubscriptions(ctx, requestcontext.Viewer(ctx).UserID, req.listTypeIDs, req.languages)
	if err != nil {
		h.writeServiceError(ctx, w, "upsert list type subscriptions", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toBatchResponse(result))
}

// HandleDelete handles DELETE /subscriptions/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, h.service.DeleteSubscription)
}

// HandleDeleteListType handles DELETE /subscriptions/list-types/{id}.
func (h *Handler) HandleDeleteListType(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, h.service.DeleteListTypeSubscription)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request, del func(context.Context, domain.UserID, domain.SubscriptionID) error) {
	ctx := r.Context()
	id, err := domain.ParseSubscriptionID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := del(ctx, requestcontext.Viewer(ctx).UserID, id); err != nil {
		h.writeServiceError(ctx, w, "delete subscription", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemoveUser handles DELETE /admin/users/{userId}/subscriptions.
func (h *Handler) HandleRemoveUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := domain.ParseUserID(chi.URLParam(r, "userId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	summary, err := h.service.RemoveUser(ctx, userID)
	if err != nil {
		h.writeServiceError(ctx, w, "remove user subscriptions", err)
		return
	}
	h.logger.InfoContext(ctx, "admin removed user subscriptions",
		"admin_id", requestcontext.Viewer(ctx).UserID.String(),
		"user_id", userID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteJSON(w, http.StatusOK, RemovalResponse{
		Subscriptions:    summary.Subscriptions,
		NotificationLogs: summary.NotificationLogs,
	})
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, op+" failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}
