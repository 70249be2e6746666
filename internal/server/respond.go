package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/PrAyAg9/diivido-sub000/internal/service"
	"github.com/PrAyAg9/diivido-sub000/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps service/storage errors to HTTP status codes:
// validation failures are the caller's fault (400), missing records are 404,
// anything else is a 500 whose detail stays in the logs.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		slog.Error("Internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", service.ErrInvalidArgument)
	}
	return nil
}

// decodeJSONIfPresent decodes a JSON body into v, treating an absent body as
// a no-op so v keeps its defaults. Works for chunked requests too, where
// ContentLength is unknown. Malformed JSON is still an error.
func decodeJSONIfPresent(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: malformed request body", service.ErrInvalidArgument)
	}
	return nil
}
