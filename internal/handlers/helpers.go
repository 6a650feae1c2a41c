package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"deepread-backend/internal/llm"
	"deepread-backend/internal/models"
	"deepread-backend/internal/services"
)

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

// handlePipelineError translates the pipeline error taxonomy into a
// user-visible status and code. Client mistakes (bad document, bad format,
// missing credential) are 400-class; provider trouble is 502-class, with
// "reachable but unhelpful" kept distinct from "call failed".
func handlePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrDocumentParse):
		writeJSON(w, http.StatusBadRequest, errorResp("DOCUMENT_PARSE_ERROR", "Could not parse the uploaded PDF", r))
	case errors.Is(err, services.ErrUnsupportedFormat):
		writeJSON(w, http.StatusBadRequest, errorResp("UNSUPPORTED_FORMAT", "Unsupported output_format. Choose 'mermaid' or 'json'.", r))
	case errors.Is(err, llm.ErrCredentialMissing):
		writeJSON(w, http.StatusBadRequest, errorResp("CREDENTIAL_MISSING", "No API key provided and no server default is configured", r))
	case errors.Is(err, llm.ErrEmptyCompletion):
		writeJSON(w, http.StatusBadGateway, errorResp("EMPTY_COMPLETION", "The AI provider returned no usable content", r))
	default:
		if _, ok := llm.AsCompletionError(err); ok {
			writeJSON(w, http.StatusBadGateway, errorResp("COMPLETION_FAILED", "Failed to get a response from the AI provider", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An internal error occurred", r))
	}
}
