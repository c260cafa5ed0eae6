// Package plaintext provides the fallback Extractor for text files.
package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"text/markdown",
		"text/html",
		"text/x-python",
		"text/x-go",
		"text/yaml",
		"application/json",
		"application/xml",
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 5 // Fallback extractor
}

// Extract returns the bytes as text. A leading byte order mark is dropped
// and Windows line endings are normalised.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	if !utf8.Valid(raw.Content) {
		return "", domain.Errorf(domain.ErrDecode, "%s is not valid UTF-8 text", raw.Name).
			WithContext("document", raw.Name)
	}

	text := strings.TrimPrefix(string(raw.Content), "\uFEFF")
	return strings.ReplaceAll(text, "\r\n", "\n"), nil
}
