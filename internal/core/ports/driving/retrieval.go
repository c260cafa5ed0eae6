package driving

import (
	"context"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

// RetrievalService selects the passages most relevant to a query.
type RetrievalService interface {
	// RetrieveForQuery ranks passages for a question.
	// topK <= 0 uses the configured default.
	RetrieveForQuery(ctx context.Context, query string, target domain.RetrievalTarget, topK int) (*domain.RetrievalResult, error)

	// RetrieveForQuiz ranks passages for quiz generation, scaling the
	// passage count with the number of questions requested.
	RetrieveForQuiz(ctx context.Context, query string, target domain.RetrievalTarget, questionCount int) (*domain.RetrievalResult, error)
}
