// Package httpapi serves the study assistant as a JSON HTTP API.
// It implements a driving adapter following hexagonal architecture principles.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driving"
	"github.com/ArmanHov2006/ai-study-assistant/internal/logger"
)

// DefaultMaxUploadBytes bounds multipart uploads.
const DefaultMaxUploadBytes = 32 << 20

// Ports aggregates the driving port interfaces required by the API.
type Ports struct {
	Document  driving.DocumentService
	Retrieval driving.RetrievalService
	Study     driving.StudyService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	if p.Study == nil {
		return ErrMissingStudyService
	}
	return nil
}

// Options tune the API.
type Options struct {
	// MaxUploadBytes caps a multipart upload. Zero uses DefaultMaxUploadBytes.
	MaxUploadBytes int64

	// MCP, when set, is mounted under /mcp.
	MCP http.Handler
}

// Handler routes API requests to the driving ports.
type Handler struct {
	ports     *Ports
	maxUpload int64
	started   time.Time
	router    *mux.Router
}

// NewHandler creates the API handler.
func NewHandler(ports *Ports, opts Options) (*Handler, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}

	h := &Handler{
		ports:     ports,
		maxUpload: opts.MaxUploadBytes,
		started:   time.Now(),
		router:    mux.NewRouter(),
	}
	h.routes(opts.MCP)
	return h, nil
}

func (h *Handler) routes(mcpHandler http.Handler) {
	r := h.router
	r.Use(logRequests)

	r.HandleFunc("/", h.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/upload", h.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/documents", h.handleListDocuments).Methods(http.MethodGet)
	r.HandleFunc("/documents/{name}", h.handleDeleteDocument).Methods(http.MethodDelete)
	r.HandleFunc("/debug/chunks/{name}", h.handleInspectDocument).Methods(http.MethodGet)

	r.HandleFunc("/retrieve", h.handleRetrieve).Methods(http.MethodPost)
	r.HandleFunc("/chat", h.handleChat).Methods(http.MethodPost)
	r.HandleFunc("/conversations", h.handleListConversations).Methods(http.MethodGet)
	r.HandleFunc("/conversations/{id}", h.handleGetConversation).Methods(http.MethodGet)
	r.HandleFunc("/conversations/{id}", h.handleDeleteConversation).Methods(http.MethodDelete)

	r.HandleFunc("/summarize/{name}", h.handleSummarise).Methods(http.MethodPost)
	r.HandleFunc("/generate-quiz", h.handleGenerateQuiz).Methods(http.MethodPost)
	r.HandleFunc("/quiz/grade", h.handleGradeQuiz).Methods(http.MethodPost)

	if mcpHandler != nil {
		r.PathPrefix("/mcp").Handler(mcpHandler)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, domain.NewError(domain.ErrNotFound, "no route").WithContext("path", req.URL.Path))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{
			Error:   "method_not_allowed",
			Message: req.Method + " is not allowed on " + req.URL.Path,
		})
	})
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":   "study-assistant",
		"status": "running",
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	docs, err := h.ports.Document.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"documents":  len(docs),
		"uptime_sec": int(time.Since(h.started).Seconds()),
		"time":       time.Now().Format(time.RFC3339),
	})
}

// decodeBody reads a JSON request body into v, answering 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		badRequest(w, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// logRequests logs each request at debug level with its duration.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("http: %s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}
