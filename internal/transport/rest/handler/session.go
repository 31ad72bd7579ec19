package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"promptquest/internal/model"
	"promptquest/internal/service"
	"promptquest/internal/transport/rest/middleware"
)

// SessionHandler handles play session endpoints
type SessionHandler struct {
	progression *service.ProgressionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(progression *service.ProgressionService) *SessionHandler {
	return &SessionHandler{progression: progression}
}

// Start handles POST /v1/sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	resp, err := h.progression.Start(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Get handles GET /v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, h.progression.Get)
}

// Submit handles POST /v1/sessions/{id}/submissions
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.progression.Submit(r.Context(), middleware.GetSessionID(r.Context()), req.Candidate)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Skip handles POST /v1/sessions/{id}/skip
func (h *SessionHandler) Skip(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, h.progression.Skip)
}

// Advance handles POST /v1/sessions/{id}/advance
func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, h.progression.Advance)
}

// Restart handles POST /v1/sessions/{id}/restart
func (h *SessionHandler) Restart(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, h.progression.Restart)
}

// End handles DELETE /v1/sessions/{id}
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	if err := h.progression.End(r.Context(), middleware.GetSessionID(r.Context())); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleHints handles POST /v1/sessions/{id}/hints/toggle
func (h *SessionHandler) ToggleHints(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, h.progression.ToggleHints)
}

// NextHint handles POST /v1/sessions/{id}/hints/next
func (h *SessionHandler) NextHint(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, h.progression.NextHint)
}

// PrevHint handles POST /v1/sessions/{id}/hints/prev
func (h *SessionHandler) PrevHint(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, h.progression.PrevHint)
}

func (h *SessionHandler) view(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) (*model.SessionView, error)) {
	v, err := fn(r.Context(), middleware.GetSessionID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
