package extractors

import (
	"context"
	"mime"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driven"
	"github.com/ArmanHov2006/ai-study-assistant/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// extensionTypes maps file extensions to MIME types. The platform MIME
// table is consulted for anything missing here.
var extensionTypes = map[string]string{
	".txt":      "text/plain",
	".text":     "text/plain",
	".csv":      "text/csv",
	".json":     "application/json",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".html":     "text/html",
	".htm":      "text/html",
	".xhtml":    "application/xhtml+xml",
	".pdf":      "application/pdf",
	".docx":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Registry selects the highest priority extractor for a document.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string][]driven.Extractor
}

// NewRegistry creates a registry holding the given extractors.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{extractors: make(map[string][]driven.Extractor)}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Register adds an extractor under each MIME type it supports.
func (r *Registry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mt := range extractor.SupportedMIMETypes() {
		list := append(r.extractors[mt], extractor)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.extractors[mt] = list
	}
}

// Extract decodes raw with the best extractor for its type. A declared
// MIME type wins; the file extension is used when it is missing or
// matches nothing.
func (r *Registry) Extract(ctx context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.NewError(domain.ErrInvalidInput, "no document to extract")
	}

	extractor, mt := r.lookup(raw.Name, raw.MIMEType)
	if extractor == nil {
		return "", domain.Errorf(domain.ErrUnsupportedFormat, "cannot read %q", raw.Name).
			WithContext("document", raw.Name).
			WithContext("mime_type", mt).
			WithContext("supported", strings.Join(r.SupportedMIMETypes(), ", "))
	}

	logger.Debug("extracting %s as %s", raw.Name, mt)
	return extractor.Extract(ctx, raw)
}

// Supports reports whether a file name or MIME type can be extracted.
func (r *Registry) Supports(name, mimeType string) bool {
	e, _ := r.lookup(name, mimeType)
	return e != nil
}

// SupportedMIMETypes returns all MIME types that can be extracted, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.extractors))
	for mt := range r.extractors {
		types = append(types, mt)
	}
	sort.Strings(types)
	return types
}

// lookup returns the extractor and the MIME type it was chosen for.
func (r *Registry) lookup(name, declared string) (driven.Extractor, string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mt := normaliseType(declared)
	if mt != "" && mt != "application/octet-stream" {
		if list := r.extractors[mt]; len(list) > 0 {
			return list[0], mt
		}
	}

	byExt := TypeForName(name)
	if byExt != "" {
		if list := r.extractors[byExt]; len(list) > 0 {
			return list[0], byExt
		}
	}

	if mt == "" {
		mt = byExt
	}
	return nil, mt
}

// TypeForName derives a MIME type from a file name's extension.
func TypeForName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	if mt, ok := extensionTypes[ext]; ok {
		return mt
	}
	return normaliseType(mime.TypeByExtension(ext))
}

// normaliseType strips parameters such as charset and lowercases.
func normaliseType(mt string) string {
	if mt == "" {
		return ""
	}
	if parsed, _, err := mime.ParseMediaType(mt); err == nil {
		return parsed
	}
	return strings.ToLower(strings.TrimSpace(mt))
}
