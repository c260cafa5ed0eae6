// Package google provides an embedding service adapter using the Gemini API.
package google

import (
	"context"

	"github.com/google/generative-ai-go/genai"
	genaiopt "google.golang.org/api/option"

	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driven/ai/aierr"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel      = "text-embedding-004"
	DefaultDimensions = 768
)

// Config holds configuration for the Gemini embedding service.
type Config struct {
	// APIKey is the Google AI Studio API key (required).
	APIKey string

	// Model is the embedding model to use (default: text-embedding-004).
	Model string
}

// EmbeddingService generates embeddings using the Gemini API.
type EmbeddingService struct {
	client *genai.Client
	model  string
}

// NewEmbeddingService creates a new Gemini embedding service.
func NewEmbeddingService(ctx context.Context, cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, domain.NewError(domain.ErrConfigNotFound, "google: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, genaiopt.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, aierr.FromGoogle(err)
	}

	return &EmbeddingService{client: client, model: cfg.Model}, nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	rsp, err := s.client.EmbeddingModel(s.model).EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, aierr.FromGoogle(err)
	}
	if rsp == nil || rsp.Embedding == nil || len(rsp.Embedding.Values) == 0 {
		return nil, aierr.EmptyResponse("google", "embedding")
	}
	return rsp.Embedding.Values, nil
}

// EmbedBatch generates embeddings for multiple texts in one request.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	em := s.client.EmbeddingModel(s.model)
	batch := em.NewBatch()
	for _, t := range texts {
		batch.AddContent(genai.Text(t))
	}

	rsp, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, aierr.FromGoogle(err)
	}
	if rsp == nil || len(rsp.Embeddings) != len(texts) {
		return nil, aierr.EmptyResponse("google", "embeddings")
	}

	out := make([][]float32, len(texts))
	for i, e := range rsp.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, aierr.EmptyResponse("google", "embedding")
		}
		out[i] = e.Values
	}
	return out, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return DefaultDimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping fetches the model metadata, which validates the key and model name.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if _, err := s.client.EmbeddingModel(s.model).Info(ctx); err != nil {
		return aierr.FromGoogle(err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *EmbeddingService) Close() error {
	return s.client.Close()
}
