// Package httpapi exposes the signage HTTP surface: the auth transport, the
// upload transport, asset resolution and the screen roster.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/signage/internal/common"
	"github.com/dmitrijs2005/signage/internal/logging"
	"github.com/dmitrijs2005/signage/internal/server/assets"
	"github.com/dmitrijs2005/signage/internal/server/config"
	"github.com/dmitrijs2005/signage/internal/server/credentials"
)

// sessionCookieName holds the admin session token. The cookie carries no
// Max-Age so it dies with the browsing session, matching the ephemeral
// session-gate semantics.
const sessionCookieName = "signage_session"

type Server struct {
	address         string
	logger          logging.Logger
	credentials     *credentials.Service
	assets          *assets.Service
	jwtSecret       []byte
	sessionValidity time.Duration
	mux             *http.ServeMux
}

func NewServer(cfg *config.Config, logger logging.Logger, cs *credentials.Service, as *assets.Service) *Server {
	s := &Server{
		address:         cfg.EndpointAddrHTTP,
		logger:          logger.With("module", "httpapi"),
		credentials:     cs,
		assets:          as,
		jwtSecret:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidityDuration,
		mux:             http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /api/auth", s.handleAuth)
	s.mux.HandleFunc("GET /api/auth", s.handleAuthCheck)
	s.mux.HandleFunc("POST /api/logout", s.handleLogout)
	s.mux.HandleFunc("POST /api/upload", s.requireSession(s.handleUpload))
	s.mux.HandleFunc("GET /api/upload", s.handleResolve)
	s.mux.HandleFunc("GET /api/screens", s.handleScreens)
}

// Handler returns the full middleware-wrapped handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.withRequestLogging(s.mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the structured error shape shared by all endpoints.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeError maps the domain error taxonomy onto HTTP statuses and stable
// error codes. Unknown errors are reported as internal without leaking
// details to display clients.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNoFile):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "No file provided", Code: "no_file"})
	case errors.Is(err, common.ErrNoScreenID):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "No screen ID provided", Code: "no_screen_id"})
	case errors.Is(err, common.ErrInvalidType):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "File must be an image", Code: "invalid_type"})
	case errors.Is(err, common.ErrTooLarge):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "File size must be less than 5MB", Code: "too_large"})
	case errors.Is(err, common.ErrWeakPassword):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Password must be at least 4 characters", Code: "weak_password"})
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized", Code: "unauthorized"})
	case errors.Is(err, common.ErrStoreUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "Storage unavailable", Code: "store_unavailable"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal error", Code: "internal"})
	}
}
