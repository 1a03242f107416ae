package handler

import (
	"net/http"

	"rentlify/internal/service"

	"github.com/rs/zerolog"
)

// SessionResponse returns a new session id.
type SessionResponse struct {
	SessionID string `json:"sessionId"`
}

// SessionHandler handles session and login requests.
type SessionHandler struct {
	service service.SessionService
	logger  zerolog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(service service.SessionService, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger.With().Str("handler", "session").Logger(),
	}
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.Create(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, SessionResponse{SessionID: id})
}

// Login handles POST /api/sessions/login.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	var req service.LoginRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	user, err := h.service.Login(r.Context(), sid, req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Logout handles DELETE /api/sessions.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Logout(r.Context(), sid); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Contact handles GET /api/sessions/contact.
func (h *SessionHandler) Contact(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	defaults, err := h.service.ContactDefaults(r.Context(), sid)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, defaults)
}
