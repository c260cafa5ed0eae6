package driven

import (
	"context"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

// Extractor turns uploaded bytes into plain text.
// Each extractor handles specific MIME types (e.g., PDF, Markdown).
type Extractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract returns the text content of the document.
	// Fails with domain.ErrDecode when the bytes cannot be decoded.
	Extract(ctx context.Context, raw *domain.RawDocument) (string, error)
}

// ExtractorRegistry selects the appropriate extractor for a document.
type ExtractorRegistry interface {
	// Extract decodes a raw document using the best matching extractor.
	// Fails with domain.ErrUnsupportedFormat when nothing handles the type.
	Extract(ctx context.Context, raw *domain.RawDocument) (string, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)

	// SupportedMIMETypes returns all MIME types that can be extracted.
	SupportedMIMETypes() []string

	// Supports reports whether a file name or MIME type can be extracted.
	Supports(name, mimeType string) bool
}
