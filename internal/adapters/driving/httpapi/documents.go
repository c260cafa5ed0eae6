package httpapi

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

// documentEntry is one row of the document listing.
type documentEntry struct {
	Filename string `json:"filename"`
	Length   int    `json:"length"`
}

type uploadResponse struct {
	Message string `json:"message"`
	domain.UploadResult
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
				Error:   "too_large",
				Message: "upload exceeds the size limit",
			})
			return
		}
		badRequest(w, "expected a multipart form with a file field")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "missing file field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		badRequest(w, "could not read upload: "+err.Error())
		return
	}

	name := filepath.Base(header.Filename)
	if override := r.FormValue("name"); override != "" {
		name = override
	}

	result, err := h.ports.Document.UploadFile(r.Context(), &domain.RawDocument{
		Name:     name,
		MIMEType: header.Header.Get("Content-Type"),
		Content:  content,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Message:      "Document uploaded successfully",
		UploadResult: *result,
	})
}

func (h *Handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.ports.Document.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	entries := make([]documentEntry, len(docs))
	for i, d := range docs {
		entries[i] = documentEntry{Filename: d.Name, Length: d.Length}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"documents": entries,
		"count":     len(entries),
	})
}

func (h *Handler) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := h.ports.Document.Delete(r.Context(), name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "Document deleted successfully",
		"filename": name,
	})
}

func (h *Handler) handleInspectDocument(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ports.Document.Inspect(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
