package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"promptquest/internal/model"
	"promptquest/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeServiceError maps domain errors to HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrMissingUserMessage), errors.Is(err, model.ErrInvalidLevel):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, model.ErrDuplicateSubmission),
		errors.Is(err, service.ErrSubmissionInFlight),
		errors.Is(err, model.ErrLevelClosed),
		errors.Is(err, model.ErrNotAdvanceable),
		errors.Is(err, service.ErrGameFinished):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrLevelNotFound), errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidSessionToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrCompletionUnavailable):
		writeError(w, http.StatusServiceUnavailable, service.ErrCompletionUnavailable.Error())
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
