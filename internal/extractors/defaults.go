package extractors

import (
	"github.com/ArmanHov2006/ai-study-assistant/internal/extractors/docx"
	"github.com/ArmanHov2006/ai-study-assistant/internal/extractors/html"
	"github.com/ArmanHov2006/ai-study-assistant/internal/extractors/markdown"
	"github.com/ArmanHov2006/ai-study-assistant/internal/extractors/pdf"
	"github.com/ArmanHov2006/ai-study-assistant/internal/extractors/plaintext"
)

// RegisterDefaults registers all built-in extractors with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(pdf.New())
	r.Register(docx.New())
}

// NewDefaultRegistry returns a registry with every built-in extractor.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
