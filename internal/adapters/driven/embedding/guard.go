// Package embedding holds decorators shared by the embedding adapters.
package embedding

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driven"
)

// Ensure Guard implements the interface.
var _ driven.EmbeddingService = (*Guard)(nil)

// Guard enforces the embedding contract around any provider: blank text
// is rejected before a request is made, and every vector must match the
// dimensionality of the first one produced.
type Guard struct {
	inner driven.EmbeddingService

	mu   sync.Mutex
	dims int
}

// NewGuard wraps an embedding service.
func NewGuard(inner driven.EmbeddingService) *Guard {
	return &Guard{inner: inner}
}

// Embed generates a vector embedding for the given text.
func (g *Guard) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewError(domain.ErrEmptyInput, "cannot embed empty text")
	}

	v, err := g.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := g.check(v); err != nil {
		return nil, err
	}
	return v, nil
}

// EmbedBatch generates embeddings for multiple texts.
func (g *Guard) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			return nil, domain.Errorf(domain.ErrEmptyInput, "text %d is empty", i)
		}
	}

	vectors, err := g.inner.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	for _, v := range vectors {
		if err := g.check(v); err != nil {
			return nil, err
		}
	}
	return vectors, nil
}

// check locks in the first dimensionality seen and rejects drift.
func (g *Guard) check(v []float32) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(v) == 0 {
		return domain.NewError(domain.ErrServiceFailure, "provider returned an empty vector").
			WithContext("model", g.inner.ModelName())
	}
	if g.dims == 0 {
		g.dims = len(v)
		return nil
	}
	if len(v) != g.dims {
		return domain.Errorf(domain.ErrDimensionMismatch,
			"model %s returned %d dimensions, expected %d", g.inner.ModelName(), len(v), g.dims).
			WithContext("expected", strconv.Itoa(g.dims)).
			WithContext("actual", strconv.Itoa(len(v)))
	}
	return nil
}

// Dimensions returns the observed vector size, or the provider's
// nominal size before the first embedding.
func (g *Guard) Dimensions() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.dims > 0 {
		return g.dims
	}
	return g.inner.Dimensions()
}

// ModelName returns the name of the embedding model being used.
func (g *Guard) ModelName() string {
	return g.inner.ModelName()
}

// Ping validates the service is reachable.
func (g *Guard) Ping(ctx context.Context) error {
	return g.inner.Ping(ctx)
}

// Close releases resources.
func (g *Guard) Close() error {
	return g.inner.Close()
}
