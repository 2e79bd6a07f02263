package httptransport

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	jwttoken "courtpub/internal/jwt_token"
	"courtpub/pkg/domain"
	"courtpub/pkg/platform/httputil"
	"courtpub/pkg/requestcontext"
	"courtpub/pkg/testutil"
)

type echoRoutes struct{}

func (echoRoutes) Register(r chi.Router) {
	r.Get("/echo", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"role": string(requestcontext.Viewer(r.Context()).Role)})
	})
}

type privateRoutes struct{}

func (privateRoutes) Register(r chi.Router) {
	r.Get("/private", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

type adminRoutes struct{}

func (adminRoutes) RegisterAdmin(r chi.Router) {
	r.Get("/admin/thing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/admin/panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
}

type RouterSuite struct {
	suite.Suite
	tokens *jwttoken.JWTService
	router http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.tokens = jwttoken.NewJWTService("router-test-key", "courtpub")
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	s.router = NewRouter(Routes{
		Public:        []Registrar{echoRoutes{}},
		Authenticated: []Registrar{privateRoutes{}},
		Admin:         []AdminRegistrar{adminRoutes{}},
	}, s.tokens, logger, nil)
}

func (s *RouterSuite) request(path string, role domain.UserRole) *http.Request {
	req := testutil.NewRequest(s.T(), http.MethodGet, path)
	if role != "" {
		token, err := s.tokens.GenerateViewerToken(domain.Viewer{UserID: domain.NewUserID(), Role: role, Provenance: domain.UserProvenanceSSO}, time.Hour)
		s.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func (s *RouterSuite) TestHealth() {
	rr := testutil.DoRequest(s.router, s.request("/health", ""))
	testutil.AssertStatusOK(s.T(), rr)
	s.NotEmpty(rr.Header().Get("X-Request-ID"))
}

func (s *RouterSuite) TestHealthReportsFailingChecks() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	router := NewRouter(Routes{Health: map[string]HealthCheck{
		"database":        func(context.Context) error { return nil },
		"reference_cache": func(context.Context) error { return errors.New("connection refused") },
	}}, s.tokens, logger, nil)

	rr := testutil.DoRequest(router, s.request("/health", ""))
	s.Equal(http.StatusServiceUnavailable, rr.Code)
	testutil.AssertJSONContains(s.T(), rr, "status", "degraded")
	s.Contains(rr.Body.String(), `"failing":["reference_cache"]`)
}

func (s *RouterSuite) TestPublicRoutesSeeViewer() {
	rr := testutil.DoRequest(s.router, s.request("/echo", ""))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "role", "")

	rr = testutil.DoRequest(s.router, s.request("/echo", domain.RoleVerified))
	testutil.AssertJSONContains(s.T(), rr, "role", "VERIFIED")
}

func (s *RouterSuite) TestInvalidTokenIsRejected() {
	req := s.request("/echo", "")
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
}

func (s *RouterSuite) TestAccessLevels() {
	cases := []struct {
		name   string
		path   string
		role   domain.UserRole
		status int
	}{
		{"anonymous private", "/private", "", http.StatusUnauthorized},
		{"verified private", "/private", domain.RoleVerified, http.StatusNoContent},
		{"anonymous admin", "/admin/thing", "", http.StatusUnauthorized},
		{"verified admin", "/admin/thing", domain.RoleVerified, http.StatusForbidden},
		{"internal admin", "/admin/thing", domain.RoleInternalAdminCTSC, http.StatusForbidden},
		{"system admin", "/admin/thing", domain.RoleSystemAdmin, http.StatusNoContent},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			rr := testutil.DoRequest(s.router, s.request(tc.path, tc.role))
			testutil.AssertStatus(s.T(), rr, tc.status)
		})
	}
}

func (s *RouterSuite) TestPanicBecomes500() {
	rr := testutil.DoRequest(s.router, s.request("/admin/panic", domain.RoleSystemAdmin))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusInternalServerError, "internal_error")
}
