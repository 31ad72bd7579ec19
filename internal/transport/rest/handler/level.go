package handler

import (
	"encoding/json"
	"net/http"

	"promptquest/internal/model"
	"promptquest/internal/service"
)

// LevelHandler handles level catalog and stateless evaluation endpoints
type LevelHandler struct {
	levels    *service.LevelService
	evaluator service.Evaluator
}

// NewLevelHandler creates a new level handler
func NewLevelHandler(levels *service.LevelService, evaluator service.Evaluator) *LevelHandler {
	return &LevelHandler{
		levels:    levels,
		evaluator: evaluator,
	}
}

// List handles GET /v1/levels
func (h *LevelHandler) List(w http.ResponseWriter, r *http.Request) {
	levels := h.levels.List()
	out := make([]model.LevelSummary, 0, len(levels))
	for _, l := range levels {
		out = append(out, l.Summary())
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"levels": out})
}

// Evaluate handles POST /v1/evaluate
func (h *LevelHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req model.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	level, err := h.levels.Get(req.LevelNumber)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	result, err := h.evaluator.Evaluate(r.Context(), *level, req.Candidate)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
