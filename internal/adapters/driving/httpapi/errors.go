package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/logger"
)

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("httpapi: document service is required")

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("httpapi: retrieval service is required")

// ErrMissingStudyService is returned when the study service is not provided.
var ErrMissingStudyService = errors.New("httpapi: study service is required")

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Context map[string]string `json:"context,omitempty"`
}

// statusFor maps an error kind to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrEmptyDocument),
		errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrNoDocuments),
		errors.Is(err, domain.ErrNoChunks),
		errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrLLMUnavailable),
		errors.Is(err, domain.ErrEmbeddingUnavailable),
		errors.Is(err, domain.ErrConfigNotFound):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as an errorBody with the status for its kind.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("http: %v", err)
	} else {
		logger.Debug("http: %d %v", status, err)
	}

	body := errorBody{
		Error:   domain.KindName(err),
		Message: err.Error(),
		Context: domain.ContextOf(err),
	}
	var derr *domain.Error
	if errors.As(err, &derr) && derr.Message != "" {
		body.Message = derr.Message
	}
	writeJSON(w, status, body)
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("http: encode response: %v", err)
	}
}

// badRequest reports a malformed request body or parameter.
func badRequest(w http.ResponseWriter, message string) {
	writeError(w, domain.NewError(domain.ErrInvalidInput, message))
}
