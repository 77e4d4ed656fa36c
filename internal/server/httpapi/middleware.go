package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/signage/internal/common"
	"github.com/dmitrijs2005/signage/internal/logging"
	"github.com/dmitrijs2005/signage/internal/server/auth"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestLogging tags every request with a request id and logs method,
// path, status and duration. The id is minted up front and a child logger
// carrying it travels in the request context, so handler-level log lines
// correlate with the request entry.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		reqLogger := s.logger.With("request_id", uuid.NewString())
		ctx := logging.ContextWithLogger(r.Context(), reqLogger)

		next.ServeHTTP(rec, r.WithContext(ctx))

		reqLogger.Info(ctx, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}

// log returns the request-scoped logger when ctx carries one.
func (s *Server) log(ctx context.Context) logging.Logger {
	return logging.FromContext(ctx, s.logger)
}

// sessionToken extracts the session token from the cookie or, for
// non-browser clients, from the Authorization header.
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(h, "Bearer "); ok {
		return after
	}
	return ""
}

// requireSession gates admin mutations behind a valid session token.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			writeError(w, common.ErrUnauthorized)
			return
		}
		if err := auth.VerifyToken(token, s.jwtSecret); err != nil {
			writeError(w, err)
			return
		}
		next(w, r)
	}
}

// setSessionCookie installs the session token as a browser-session-scoped
// cookie (no Max-Age: it is destroyed when the browsing session ends).
func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
