package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dkrish/GoOCR/internal/adapter"
	"github.com/dkrish/GoOCR/internal/config"
	"github.com/dkrish/GoOCR/internal/ocr"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logOH.Error("Error encoding response: %v", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

func validateContext(ctx context.Context) bool {
	logOH.With("traceId:", ctx.Value(config.TRACE_ID_KEY).(string))
	if ctx.Err() != nil {
		logOH.Warn("context error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logOH.Warn("context cancelled")
		return false
	default:
		return true

	}
}

// writeServiceError maps the orchestrator's sentinel errors to HTTP codes.
func writeServiceError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, ocr.ErrNotFound):
		WriteErrorResponse(w, http.StatusNotFound, id, err.Error())
	case errors.Is(err, ocr.ErrValidation):
		WriteErrorResponse(w, http.StatusBadRequest, id, err.Error())
	default:
		WriteErrorResponse(w, http.StatusInternalServerError, id, "Internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	defer func() {
		if err := r.Body.Close(); err != nil {
			logOH.Error("Couldn't close the request body reader :", err)
		}
	}()
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		logOH.Warn("Bad request body: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
		return false
	}
	return true
}
