package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driven"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driving"
	"github.com/ArmanHov2006/ai-study-assistant/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalService picks the passages to send to the LLM.
// It ranks by embedding similarity when vectors are available and falls
// back to keyword overlap otherwise.
type RetrievalService struct {
	docStore driven.DocumentStore
	embedder driven.EmbeddingService
	settings domain.RetrievalSettings
}

// NewRetrievalService creates a new retrieval service.
// The embedder is optional (can be nil).
func NewRetrievalService(
	docStore driven.DocumentStore,
	embedder driven.EmbeddingService,
	settings domain.RetrievalSettings,
) *RetrievalService {
	return &RetrievalService{
		docStore: docStore,
		embedder: embedder,
		settings: settings,
	}
}

// RetrieveForQuery ranks passages for a question.
func (s *RetrievalService) RetrieveForQuery(
	ctx context.Context, query string, target domain.RetrievalTarget, topK int,
) (*domain.RetrievalResult, error) {
	if topK <= 0 {
		topK = s.settings.TopK
	}
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return s.retrieve(ctx, query, target, topK)
}

// RetrieveForQuiz ranks passages for quiz generation. More questions pull
// in more passages, within the configured bounds.
func (s *RetrievalService) RetrieveForQuiz(
	ctx context.Context, query string, target domain.RetrievalTarget, questionCount int,
) (*domain.RetrievalResult, error) {
	return s.retrieve(ctx, query, target, s.settings.QuizTopK(questionCount))
}

func (s *RetrievalService) retrieve(
	ctx context.Context, query string, target domain.RetrievalTarget, topK int,
) (*domain.RetrievalResult, error) {
	logger.Section("Retrieval")
	logger.Debug("Query: %q, target: %+v, topK: %d", query, target, topK)

	switch {
	case target.AllDocuments:
		return s.retrieveAll(ctx, query, topK)
	case target.DocumentName != "":
		return s.retrieveSingle(ctx, query, target.DocumentName, topK)
	default:
		return nil, domain.NewError(domain.ErrInvalidInput, "a document name or all documents must be selected")
	}
}

func (s *RetrievalService) retrieveSingle(
	ctx context.Context, query, name string, topK int,
) (*domain.RetrievalResult, error) {
	doc, err := s.docStore.Get(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.documentNotFound(ctx, name)
		}
		return nil, err
	}
	if len(doc.Passages) == 0 {
		return nil, domain.Errorf(domain.ErrEmptyDocument, "document %q has no passages", name).
			WithContext("document", name)
	}

	var ranked []domain.RetrievedPassage
	method := domain.MethodKeyword

	// Vectors may cover only a prefix of the passages.
	n := min(len(doc.Vectors), len(doc.Passages))
	if q, ok := s.embedQuery(ctx, query, doc.HasVectors()); ok {
		ranked, err = RankBySimilarity(q, doc.Vectors[:n], doc.Passages[:n], topK)
		if err != nil {
			return nil, err
		}
		method = domain.MethodVector
	} else {
		ranked = RankByKeyword(query, doc.Passages, topK)
	}

	if len(ranked) == 0 {
		logger.Debug("No ranked passages, using all %d passages of %q", len(doc.Passages), name)
		ranked = unranked(doc.Passages, len(doc.Passages))
		method = domain.MethodFallback
	}

	for i := range ranked {
		ranked[i].Source = name
	}

	logger.Debug("Retrieved %d passages from %q by %s", len(ranked), name, method)
	return &domain.RetrievalResult{Passages: ranked, Method: method}, nil
}

func (s *RetrievalService) retrieveAll(
	ctx context.Context, query string, topK int,
) (*domain.RetrievalResult, error) {
	// Count and passages come from one snapshot.
	all, err := s.docStore.CollectAll(ctx)
	if err != nil {
		return nil, err
	}
	if all.Documents == 0 {
		return nil, domain.NewError(domain.ErrNoDocuments, "no documents have been uploaded")
	}
	if all.Len() == 0 {
		return nil, domain.NewError(domain.ErrNoChunks, "no passages in any document").
			WithContext("documents", strconv.Itoa(all.Documents))
	}

	// Keep each embedded passage's collection index so sources resolve
	// by position.
	var (
		indexes  []int
		vectors  []domain.Vector
		passages []string
	)
	for i, v := range all.Vectors {
		if v.Present() {
			indexes = append(indexes, i)
			vectors = append(vectors, v)
			passages = append(passages, all.Passages[i])
		}
	}
	logger.Debug("Collection: %d passages, %d embedded, %d documents", all.Len(), len(indexes), all.Documents)

	var ranked []domain.RetrievedPassage
	method := domain.MethodKeyword

	if q, ok := s.embedQuery(ctx, query, len(indexes) > 0); ok {
		ranked, err = RankBySimilarity(q, vectors, passages, topK)
		if err != nil {
			return nil, err
		}
		for i := range ranked {
			ranked[i].Index = indexes[ranked[i].Index]
		}
		method = domain.MethodVector
	} else {
		ranked = RankByKeyword(query, all.Passages, topK)
	}

	if len(ranked) == 0 {
		n := min(domain.DefaultFallbackSize, all.Len())
		logger.Debug("No ranked passages, using the first %d", n)
		ranked = unranked(all.Passages, n)
		method = domain.MethodFallback
	}

	for i := range ranked {
		ranked[i].Source = sourceAt(all.Sources, ranked[i].Index)
	}

	logger.Debug("Retrieved %d passages across documents by %s", len(ranked), method)
	return &domain.RetrievalResult{Passages: ranked, Method: method}, nil
}

// embedQuery embeds the query when similarity ranking is possible.
// A failure degrades to keyword ranking and is not an error.
func (s *RetrievalService) embedQuery(ctx context.Context, query string, haveVectors bool) (domain.Vector, bool) {
	if !haveVectors || s.embedder == nil {
		return nil, false
	}
	q, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Debug("Query embedding unavailable, ranking by keyword: %v", err)
		return nil, false
	}
	return domain.Vector(q), true
}

func (s *RetrievalService) documentNotFound(ctx context.Context, name string) error {
	e := domain.Errorf(domain.ErrDocumentNotFound, "document %q not found", name).
		WithContext("document", name)

	docs, err := s.docStore.List(ctx)
	if err != nil {
		return e
	}
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return e.WithContext("available", strings.Join(names, ", "))
}

func unranked(passages []string, n int) []domain.RetrievedPassage {
	out := make([]domain.RetrievedPassage, n)
	for i := 0; i < n; i++ {
		out[i] = domain.RetrievedPassage{Text: passages[i], Index: i}
	}
	return out
}

func sourceAt(sources []string, i int) string {
	if i < 0 || i >= len(sources) || sources[i] == "" {
		return domain.UnknownSource
	}
	return sources[i]
}
