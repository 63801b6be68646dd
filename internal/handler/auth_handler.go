package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"luxe-storefront/internal/model"
	"luxe-storefront/internal/store"
)

// AuthHandler handles the two mock sessions: the admin flag and the
// shopper profile.
type AuthHandler struct {
	sessions *store.SessionStore
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(sessions *store.SessionStore, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

// AdminLogin handles POST /api/auth/admin/login.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, model.ErrCodeInvalidJSON, "Invalid request body")
		return
	}

	if err := h.sessions.AdminLogin(r.Context(), body.Username, body.Password); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
}

// AdminLogout handles POST /api/auth/admin/logout.
func (h *AuthHandler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.AdminLogout(r.Context()); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSession handles GET /api/auth/session.
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	profile, err := h.sessions.CurrentUser(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if profile == nil {
		writeError(w, model.ErrNotFound, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// SetSession handles POST /api/auth/session, the identity provider
// callback delivering the shopper profile.
func (h *AuthHandler) SetSession(w http.ResponseWriter, r *http.Request) {
	var profile model.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeBadRequest(w, model.ErrCodeInvalidJSON, "Invalid request body")
		return
	}

	if err := h.sessions.SetUser(r.Context(), &profile); err != nil {
		writeError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// ClearSession handles DELETE /api/auth/session.
func (h *AuthHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.UserLogout(r.Context()); err != nil {
		writeError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
