package driving

import (
	"context"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

// DocumentService manages uploaded documents.
type DocumentService interface {
	// Upload chunks and embeds text, replacing any document with the same name.
	// Embedding failures never fail the upload; they reduce EmbeddingCount.
	Upload(ctx context.Context, name, text string) (*domain.UploadResult, error)

	// UploadFile extracts text from a file and uploads it.
	UploadFile(ctx context.Context, raw *domain.RawDocument) (*domain.UploadResult, error)

	// Delete removes a document.
	// Returns domain.ErrDocumentNotFound if absent.
	Delete(ctx context.Context, name string) error

	// List returns every document with its text length.
	List(ctx context.Context) ([]domain.DocumentSummary, error)

	// Get retrieves a stored document.
	Get(ctx context.Context, name string) (*domain.Document, error)

	// Inspect reports chunk and embedding counts for a document.
	Inspect(ctx context.Context, name string) (*domain.DocumentStats, error)

	// Supports reports whether a file can be uploaded.
	Supports(name, mimeType string) bool
}
