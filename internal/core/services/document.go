package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driven"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driving"
	"github.com/ArmanHov2006/ai-study-assistant/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// previewLength is the number of characters shown from the first passage.
const previewLength = 200

// DocumentService chunks, embeds and stores uploaded documents.
type DocumentService struct {
	docStore   driven.DocumentStore
	chunker    driven.Chunker
	embedder   driven.EmbeddingService
	extractors driven.ExtractorRegistry
	now        func() time.Time
}

// NewDocumentService creates a new document service.
// The embedder is optional (can be nil); without it uploads record no vectors.
func NewDocumentService(
	docStore driven.DocumentStore,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
) *DocumentService {
	return &DocumentService{
		docStore: docStore,
		chunker:  chunker,
		embedder: embedder,
		now:      time.Now,
	}
}

// SetExtractors sets the registry used by UploadFile.
func (s *DocumentService) SetExtractors(registry driven.ExtractorRegistry) {
	s.extractors = registry
}

// Upload chunks and embeds text and stores it under name.
func (s *DocumentService) Upload(ctx context.Context, name, text string) (*domain.UploadResult, error) {
	logger.Section("Upload")

	if strings.TrimSpace(name) == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "document name is required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.Errorf(domain.ErrEmptyDocument, "document %q has no text", name).
			WithContext("document", name)
	}

	passages := s.chunker.Chunk(text)
	logger.Debug("Document %q: %d characters, %d passages (size=%d, overlap=%d)",
		name, utf8.RuneCountInString(text), len(passages), s.chunker.ChunkSize(), s.chunker.Overlap())

	vectors := s.embedPassages(ctx, name, passages)

	doc := &domain.Document{
		Name:      name,
		FullText:  text,
		Passages:  passages,
		Vectors:   vectors,
		CreatedAt: s.now(),
	}
	if err := s.docStore.Save(ctx, doc); err != nil {
		return nil, err
	}

	logger.Info("Stored %q: %d passages, %d embedded", name, len(passages), len(vectors))

	return &domain.UploadResult{
		Name:           name,
		TextLength:     doc.Length(),
		ChunkCount:     len(passages),
		EmbeddingCount: len(vectors),
	}, nil
}

// embedPassages embeds passages in order and stops at the first failure,
// so the result is always an aligned prefix of passages.
func (s *DocumentService) embedPassages(ctx context.Context, name string, passages []string) []domain.Vector {
	if s.embedder == nil {
		logger.Debug("No embedding service, %q stored for keyword retrieval", name)
		return nil
	}

	defer logger.Timed("embed passages")()

	var vectors []domain.Vector
	for i, p := range passages {
		v, err := s.embedder.Embed(ctx, p)
		if err != nil {
			logger.Debug("Embedding stopped at passage %d of %d for %q: %v", i, len(passages), name, err)
			break
		}
		vectors = append(vectors, domain.Vector(v))
	}
	return vectors
}

// UploadFile extracts text from a file and uploads it under the file name.
func (s *DocumentService) UploadFile(ctx context.Context, raw *domain.RawDocument) (*domain.UploadResult, error) {
	if raw == nil {
		return nil, domain.NewError(domain.ErrInvalidInput, "no file provided")
	}
	if s.extractors == nil {
		return nil, domain.Errorf(domain.ErrUnsupportedFormat, "no extractors configured for %q", raw.Name).
			WithContext("document", raw.Name)
	}

	text, err := s.extractors.Extract(ctx, raw)
	if err != nil {
		return nil, err
	}
	return s.Upload(ctx, raw.Name, text)
}

// Supports reports whether UploadFile can handle the file.
func (s *DocumentService) Supports(name, mimeType string) bool {
	return s.extractors != nil && s.extractors.Supports(name, mimeType)
}

// Delete removes a document.
func (s *DocumentService) Delete(ctx context.Context, name string) error {
	return s.docStore.Delete(ctx, name)
}

// List returns every stored document with its length.
func (s *DocumentService) List(ctx context.Context) ([]domain.DocumentSummary, error) {
	return s.docStore.List(ctx)
}

// Get retrieves a document by name.
func (s *DocumentService) Get(ctx context.Context, name string) (*domain.Document, error) {
	return s.docStore.Get(ctx, name)
}

// Inspect reports how a document was chunked and embedded.
func (s *DocumentService) Inspect(ctx context.Context, name string) (*domain.DocumentStats, error) {
	doc, err := s.docStore.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	stats := &domain.DocumentStats{
		Name:           doc.Name,
		TextLength:     doc.Length(),
		ChunkCount:     len(doc.Passages),
		EmbeddingCount: len(doc.Vectors),
		HasEmbeddings:  doc.HasVectors(),
	}
	if len(doc.Passages) > 0 {
		stats.FirstChunkPreview = truncateRunes(doc.Passages[0], previewLength)
	}
	return stats, nil
}

// truncateRunes cuts s to at most n characters.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
