package driven

import (
	"context"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

// DocumentStore holds uploaded documents keyed by name.
// Implementations guard their state so concurrent uploads, deletes and
// queries never observe a partially written document.
type DocumentStore interface {
	// Save stores a document, replacing any existing document with the same name.
	// Returns domain.ErrDimensionMismatch if it has more vectors than passages.
	Save(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by name.
	// Returns domain.ErrDocumentNotFound if absent.
	Get(ctx context.Context, name string) (*domain.Document, error)

	// Delete removes a document entirely.
	// Returns domain.ErrDocumentNotFound if absent.
	Delete(ctx context.Context, name string) error

	// List returns every document name with its text length, in insertion order.
	List(ctx context.Context) ([]domain.DocumentSummary, error)

	// CollectAll returns every stored passage with its vector slot and
	// source document name, in insertion order then passage order.
	// Collection.Documents counts the documents in the same snapshot.
	CollectAll(ctx context.Context) (*domain.Collection, error)
}
