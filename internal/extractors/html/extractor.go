// Package html provides an Extractor for HTML documents. It extracts
// readable body text, dropping scripts and styles.
package html

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles HTML documents.
type Extractor struct{}

// New creates a new HTML extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50 // Generic MIME extractor, higher than plaintext
}

// Elements whose text is never shown to a reader.
const hiddenElements = "head, script, style, noscript, svg, template, iframe"

// Elements that end a line of text.
const blockElements = "p, div, br, hr, li, tr, h1, h2, h3, h4, h5, h6, blockquote, pre, table, section, article, header, footer"

var (
	multiSpaces   = regexp.MustCompile(`[ \t\f\v]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// Extract returns the visible text of the document body.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw.Content))
	if err != nil {
		return "", domain.Errorf(domain.ErrDecode, "parse %s: %v", raw.Name, err).
			WithContext("document", raw.Name)
	}

	doc.Find(hiddenElements).Remove()
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml("\n")
	})

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	return cleanWhitespace(root.Text()), nil
}

// cleanWhitespace trims each line and collapses runs of blank lines.
func cleanWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = multiSpaces.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = multiNewlines.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}
