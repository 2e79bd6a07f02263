package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"courtpub/internal/artefact/models"
	"courtpub/internal/artefact/service"
	"courtpub/pkg/domain"
	dErrors "courtpub/pkg/domain-errors"
	"courtpub/pkg/platform/httputil"
	"courtpub/pkg/requestcontext"
)

const (
	defaultPerPage = 25
	maxPerPage     = 100
)

// Service defines the artefact read operations the handler needs.
type Service interface {
	GetMetadata(ctx context.Context, id domain.ArtefactID) (*models.Artefact, error)
	GetData(ctx context.Context, id domain.ArtefactID) (*models.Artefact, error)
	ListForLocation(ctx context.Context, locationID domain.LocationID, page, perPage int) (*service.Page, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts artefact read endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/artefacts/{id}", h.HandleGetMetadata)
	r.Get("/artefacts/{id}/data", h.HandleGetData)
	r.Get("/locations/{locationId}/artefacts", h.HandleListForLocation)
}

// HandleGetMetadata handles GET /artefacts/{id}.
func (h *Handler) HandleGetMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseArtefactID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	a, err := h.service.GetMetadata(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "get artefact metadata", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toMetadataResponse(a))
}

// HandleGetData handles GET /artefacts/{id}/data. Flat files are returned as
// stored; structured lists as their JSON payload.
func (h *Handler) HandleGetData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseArtefactID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	a, err := h.service.GetData(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, "get artefact data", err)
		return
	}

	w.Header().Set("Content-Type", contentType(a))
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Payload)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Payload)
}

// HandleListForLocation handles GET /locations/{locationId}/artefacts.
func (h *Handler) HandleListForLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locationID, err := domain.ParseLocationID(chi.URLParam(r, "locationId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, err := intQuery(r, "page", 1)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	perPage, err := intQuery(r, "per_page", defaultPerPage)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	result, err := h.service.ListForLocation(ctx, locationID, page, perPage)
	if err != nil {
		h.writeServiceError(ctx, w, "list artefacts", err)
		return
	}

	items := make([]MetadataResponse, 0, len(result.Items))
	for _, a := range result.Items {
		items = append(items, toMetadataResponse(a))
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Items: items, Pagination: result.Pagination})
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

func intQuery(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeValidation, key+" must be an integer")
	}
	return n, nil
}

func contentType(a *models.Artefact) string {
	switch {
	case !a.IsFlatFile:
		return "application/json"
	case bytes.HasPrefix(a.Payload, []byte("%PDF")):
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
