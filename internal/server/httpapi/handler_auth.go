package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/signage/internal/common"
	"github.com/dmitrijs2005/signage/internal/server/auth"
)

type authRequest struct {
	Action      string `json:"action"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

type authResponse struct {
	Success       bool   `json:"success"`
	Authenticated bool   `json:"authenticated,omitempty"`
	Message       string `json:"message,omitempty"`
	Token         string `json:"token,omitempty"`
}

// handleAuth is the auth transport: {action: setup|login|check|rotate}.
// By design the wire makes no distinction between "wrong password" and
// "no password set": both surface as a failed login.
func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body", Code: "bad_request"})
		return
	}

	switch req.Action {
	case "setup":
		s.handleSetup(w, r, req)
	case "login":
		s.handleLogin(w, r, req)
	case "check":
		s.writeHasPassword(w, r)
	case "rotate":
		s.handleRotate(w, r, req)
	default:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid action", Code: "bad_request"})
	}
}

func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request, req authRequest) {
	if err := s.credentials.Setup(r.Context(), req.NewPassword); err != nil {
		s.log(r.Context()).Error(r.Context(), "credential setup failed", "error", err)
		writeError(w, err)
		return
	}

	token, err := auth.GenerateToken(s.jwtSecret, s.sessionValidity)
	if err != nil {
		writeError(w, err)
		return
	}
	s.setSessionCookie(w, token)

	writeJSON(w, http.StatusOK, authResponse{
		Success: true,
		Message: "Password set successfully",
		Token:   token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, req authRequest) {
	if req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Password required", Code: "bad_request"})
		return
	}

	ok, err := s.credentials.Verify(r.Context(), req.Password)
	if err != nil {
		s.log(r.Context()).Error(r.Context(), "credential verify failed", "error", err)
		writeError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Invalid password", Code: "invalid_password"})
		return
	}

	token, err := auth.GenerateToken(s.jwtSecret, s.sessionValidity)
	if err != nil {
		writeError(w, err)
		return
	}
	s.setSessionCookie(w, token)

	writeJSON(w, http.StatusOK, authResponse{
		Success:       true,
		Authenticated: true,
		Token:         token,
	})
}

func (s *Server) handleRotate(w http.ResponseWriter, r *http.Request, req authRequest) {
	if err := auth.VerifyToken(sessionToken(r), s.jwtSecret); err != nil {
		writeError(w, err)
		return
	}

	if err := s.credentials.Rotate(r.Context(), req.Password, req.NewPassword); err != nil {
		if !errors.Is(err, common.ErrUnauthorized) && !errors.Is(err, common.ErrWeakPassword) {
			s.log(r.Context()).Error(r.Context(), "credential rotation failed", "error", err)
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Success: true, Message: "Password updated"})
}

// handleAuthCheck reports whether a credential has been configured. The
// answer drives the client-side session gate: false puts a fresh session
// into setup mode. With the remote check disabled by configuration this is
// always false, as in the original system.
func (s *Server) handleAuthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeHasPassword(w, r)
}

func (s *Server) writeHasPassword(w http.ResponseWriter, r *http.Request) {
	exists, err := s.credentials.Exists(r.Context())
	if err != nil {
		// Degrade to setup mode rather than blocking the admin surface.
		s.log(r.Context()).Warn(r.Context(), "credential existence check failed", "error", err)
		exists = false
	}
	writeJSON(w, http.StatusOK, map[string]bool{"hasPassword": exists})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, authResponse{Success: true})
}
