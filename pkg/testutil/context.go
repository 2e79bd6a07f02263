package testutil

import (
	"net/http"
	"time"

	"courtpub/pkg/domain"
	"courtpub/pkg/requestcontext"
)

// WithViewer attaches v to the request context, as the viewer middleware would.
func WithViewer(req *http.Request, v domain.Viewer) *http.Request {
	return req.WithContext(requestcontext.WithViewer(req.Context(), v))
}

// WithRole attaches a fresh viewer with the given role. Verified users get
// provenance prov; pass "" for the admin roles.
func WithRole(req *http.Request, role domain.UserRole, prov domain.UserProvenance) (*http.Request, domain.Viewer) {
	v := domain.Viewer{UserID: domain.NewUserID(), Role: role, Provenance: prov}
	return WithViewer(req, v), v
}

// WithNow pins the request-scoped clock.
func WithNow(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
