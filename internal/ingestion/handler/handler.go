package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"courtpub/internal/ingestion/models"
	"courtpub/pkg/platform/httputil"
	"courtpub/pkg/requestcontext"
)

// Service runs the ingestion pipeline.
type Service interface {
	ProcessIngestion(ctx context.Context, req models.Request, rawBodySizeBytes int64) models.Response
}

type Handler struct {
	service      Service
	logger       *slog.Logger
	maxBodyBytes int64
}

func New(service Service, logger *slog.Logger, maxBodyBytes int64) *Handler {
	return &Handler{service: service, logger: logger, maxBodyBytes: maxBodyBytes}
}

// Register mounts the ingestion endpoint.
func (h *Handler) Register(r chi.Router) {
	r.Post("/publication", h.HandlePublication)
}

// HandlePublication handles POST /publication. Every request, including an
// oversized or undecodable one, goes through the pipeline so it is logged.
func (h *Handler) HandlePublication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Read one byte past the limit so an oversized body is measured rather than
	// silently truncated.
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes+1))
	size := int64(len(body))

	var req models.Request
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		size = h.maxBodyBytes + 1
	case err != nil:
		req.Malformed = "could not be read"
	case len(body) == 0:
		req.Malformed = "is required"
	default:
		if err := json.Unmarshal(body, &req); err != nil {
			req = models.Request{Malformed: "must be a valid JSON object"}
		}
	}

	resp := h.service.ProcessIngestion(ctx, req, size)

	status := statusFor(resp.Outcome())
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "publication failed",
			"court_id", req.CourtID,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	httputil.WriteJSON(w, status, resp)
}

func statusFor(outcome models.Status) int {
	switch outcome {
	case models.StatusSuccess:
		return http.StatusCreated
	case models.StatusValidationError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
