// Package httptransport assembles the service's HTTP surface.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"courtpub/internal/platform/metrics"
	"courtpub/internal/platform/middleware"
	"courtpub/pkg/domain"
	"courtpub/pkg/platform/httputil"
)

// Registrar mounts a module's routes.
type Registrar interface {
	Register(r chi.Router)
}

// AdminRegistrar mounts a module's administrative routes.
type AdminRegistrar interface {
	RegisterAdmin(r chi.Router)
}

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Routes groups modules by who may call them.
type Routes struct {
	// Health names the dependency checks behind /health.
	Health map[string]HealthCheck
	// Public routes see anonymous viewers.
	Public []Registrar
	// Authenticated routes reject anonymous viewers.
	Authenticated []Registrar
	// Admin routes require SYSTEM_ADMIN.
	Admin []AdminRegistrar
}

// NewRouter wires middleware and every module's routes. Every request gets a
// request id, a pinned clock, panic recovery, an access log line and a viewer.
func NewRouter(routes Routes, viewers middleware.ViewerValidator, logger *slog.Logger, m *metrics.HTTP) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(logger, m))
	r.Use(middleware.Recovery(logger))

	r.Get("/health", health(routes.Health, logger))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Viewer(viewers, logger))
		for _, reg := range routes.Public {
			reg.Register(r)
		}
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuthenticated(logger))
			for _, reg := range routes.Authenticated {
				reg.Register(r)
			}
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logger, domain.RoleSystemAdmin))
				for _, reg := range routes.Admin {
					reg.RegisterAdmin(r)
				}
			})
		})
	})
	return r
}

// health answers 503 naming every failing check, 200 otherwise.
func health(checks map[string]HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		failing := []string{}
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				logger.WarnContext(r.Context(), "health check failed", "check", name, "error", err)
				failing = append(failing, name)
			}
		}
		if len(failing) == 0 {
			httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
			return
		}
		sort.Strings(failing)
		httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "degraded", "failing": failing})
	}
}
