package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driven/storage/memory"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

func saveDoc(t *testing.T, store *memory.DocumentStore, name string, passages []string, vectors []domain.Vector) {
	t.Helper()
	require.NoError(t, store.Save(context.Background(), &domain.Document{
		Name:     name,
		FullText: strings.Join(passages, " "),
		Passages: passages,
		Vectors:  vectors,
	}))
}

func TestRetrievalService_EndToEnd_Keyword(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	docs := NewDocumentService(store, newTestChunker(t, 50, 10), nil)
	retrieval := NewRetrievalService(store, nil, domain.DefaultRetrievalSettings())

	text := strings.Repeat("The cat sat. ", 100) + "The dog ran far away."
	_, err := docs.Upload(ctx, "story.txt", text)
	require.NoError(t, err)

	res, err := retrieval.RetrieveForQuery(ctx, "dog", domain.SingleDocument("story.txt"), 1)

	require.NoError(t, err)
	require.Len(t, res.Passages, 1)
	assert.Contains(t, res.Passages[0].Text, "dog ran far away")
	assert.Equal(t, domain.MethodKeyword, res.Method)
	assert.Equal(t, "story.txt", res.Passages[0].Source)
}

func TestRetrievalService_EndToEnd_Vector(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore()
	embedder := &mockEmbedder{embedFn: keywordVectors("cat", "dog")}
	docs := NewDocumentService(store, newTestChunker(t, 50, 10), embedder)
	retrieval := NewRetrievalService(store, embedder, domain.DefaultRetrievalSettings())

	text := strings.Repeat("The cat sat. ", 100) + "The dog ran far away."
	_, err := docs.Upload(ctx, "story.txt", text)
	require.NoError(t, err)

	res, err := retrieval.RetrieveForQuery(ctx, "dog", domain.SingleDocument("story.txt"), 1)

	require.NoError(t, err)
	require.Len(t, res.Passages, 1)
	assert.Contains(t, res.Passages[0].Text, "dog ran far away")
	assert.Equal(t, domain.MethodVector, res.Method)
}

func TestRetrievalService_Single_NotFoundListsAvailable(t *testing.T) {
	store := memory.NewDocumentStore()
	saveDoc(t, store, "a.txt", []string{"x"}, nil)
	saveDoc(t, store, "b.txt", []string{"y"}, nil)
	retrieval := NewRetrievalService(store, nil, domain.DefaultRetrievalSettings())

	_, err := retrieval.RetrieveForQuery(context.Background(), "q", domain.SingleDocument("c.txt"), 3)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	ctx := domain.ContextOf(err)
	assert.Equal(t, "c.txt", ctx["document"])
	assert.Equal(t, "a.txt, b.txt", ctx["available"])
}

func TestRetrievalService_Single_EmptyDocument(t *testing.T) {
	store := memory.NewDocumentStore()
	saveDoc(t, store, "empty", nil, nil)
	retrieval := NewRetrievalService(store, nil, domain.DefaultRetrievalSettings())

	_, err := retrieval.RetrieveForQuery(context.Background(), "q", domain.SingleDocument("empty"), 3)

	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
}

func TestRetrievalService_Single_PartialVectorsRankPrefix(t *testing.T) {
	store := memory.NewDocumentStore()
	saveDoc(t, store, "d", []string{"cat", "dog", "bird"}, []domain.Vector{{1, 0}, {0, 1}})
	embedder := &mockEmbedder{embedFn: keywordVectors("cat", "dog")}
	retrieval := NewRetrievalService(store, embedder, domain.DefaultRetrievalSettings())

	res, err := retrieval.RetrieveForQuery(context.Background(), "dog", domain.SingleDocument("d"), 5)

	require.NoError(t, err)
	assert.Equal(t, domain.MethodVector, res.Method)
	assert.Equal(t, []string{"dog", "cat"}, res.Texts())
}

func TestRetrievalService_QueryEmbeddingFailureDegrades(t *testing.T) {
	store := memory.NewDocumentStore()
	saveDoc(t, store, "d", []string{"red apple", "green pear"}, []domain.Vector{{1, 0}, {0, 1}})
	embedder := &mockEmbedder{err: domain.NewError(domain.ErrRateLimit, "slow down")}
	retrieval := NewRetrievalService(store, embedder, domain.DefaultRetrievalSettings())

	res, err := retrieval.RetrieveForQuery(context.Background(), "green", domain.SingleDocument("d"), 1)

	require.NoError(t, err)
	assert.Equal(t, domain.MethodKeyword, res.Method)
	assert.Equal(t, []string{"green pear"}, res.Texts())
}

func TestRetrievalService_DefaultTopK(t *testing.T) {
	store := memory.NewDocumentStore()
	saveDoc(t, store, "d", []string{"a", "b", "c", "d", "e"}, nil)
	retrieval := NewRetrievalService(store, nil, domain.DefaultRetrievalSettings())

	res, err := retrieval.RetrieveForQuery(context.Background(), "a", domain.SingleDocument("d"), 0)

	require.NoError(t, err)
	assert.Len(t, res.Passages, domain.DefaultTopK)
}

func TestRetrievalService_All_NoDocuments(t *testing.T) {
	retrieval := NewRetrievalService(memory.NewDocumentStore(), nil, domain.DefaultRetrievalSettings())

	_, err := retrieval.RetrieveForQuery(context.Background(), "q", domain.AllDocuments(), 3)

	assert.ErrorIs(t, err, domain.ErrNoDocuments)
}

func TestRetrievalService_All_NoChunks(t *testing.T) {
	store := memory.NewDocumentStore()
	saveDoc(t, store, "a", nil, nil)
	retrieval := NewRetrievalService(store, nil, domain.DefaultRetrievalSettings())

	_, err := retrieval.RetrieveForQuery(context.Background(), "q", domain.AllDocuments(), 3)

	assert.ErrorIs(t, err, domain.ErrNoChunks)
}

func TestRetrievalService_All_SourceAttribution(t *testing.T) {
	store := memory.NewDocumentStore()
	saveDoc(t, store, "D1", []string{"alpha one", "alpha two"}, nil)
	saveDoc(t, store, "D2", []string{"beta"}, nil)
	retrieval := NewRetrievalService(store, nil, domain.DefaultRetrievalSettings())

	res, err := retrieval.RetrieveForQuery(context.Background(), "nothing matches", domain.AllDocuments(), 3)

	require.NoError(t, err)
	assert.Equal(t, []string{"D1", "D1", "D2"}, res.Sources())
	assert.Len(t, res.Sources(), len(res.Passages))
}

func TestRetrievalService_All_VectorRankingUsesCollectionIndex(t *testing.T) {
	store := memory.NewDocumentStore()
	// D1's second passage has no vector; D2 is fully embedded.
	saveDoc(t, store, "D1", []string{"cat facts", "dog facts"}, []domain.Vector{{1, 0}})
	saveDoc(t, store, "D2", []string{"dog tricks"}, []domain.Vector{{0, 1}})
	embedder := &mockEmbedder{embedFn: keywordVectors("cat", "dog")}
	retrieval := NewRetrievalService(store, embedder, domain.DefaultRetrievalSettings())

	res, err := retrieval.RetrieveForQuery(context.Background(), "dog", domain.AllDocuments(), 2)

	require.NoError(t, err)
	assert.Equal(t, domain.MethodVector, res.Method)
	require.Len(t, res.Passages, 2)
	assert.Equal(t, "dog tricks", res.Passages[0].Text)
	assert.Equal(t, "D2", res.Passages[0].Source)
	assert.Equal(t, 2, res.Passages[0].Index)
	assert.Equal(t, "cat facts", res.Passages[1].Text)
	assert.Equal(t, "D1", res.Passages[1].Source)
}

func TestRetrievalService_All_KeywordWhenNothingEmbedded(t *testing.T) {
	store := memory.NewDocumentStore()
	saveDoc(t, store, "D1", []string{"photosynthesis makes sugar"}, nil)
	saveDoc(t, store, "D2", []string{"mitochondria make energy"}, nil)
	retrieval := NewRetrievalService(store, &mockEmbedder{}, domain.DefaultRetrievalSettings())

	res, err := retrieval.RetrieveForQuery(context.Background(), "mitochondria energy", domain.AllDocuments(), 1)

	require.NoError(t, err)
	assert.Equal(t, domain.MethodKeyword, res.Method)
	assert.Equal(t, []string{"D2"}, res.Sources())
}

func TestRetrievalService_TargetRequired(t *testing.T) {
	retrieval := NewRetrievalService(memory.NewDocumentStore(), nil, domain.DefaultRetrievalSettings())

	_, err := retrieval.RetrieveForQuery(context.Background(), "q", domain.RetrievalTarget{}, 3)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRetrievalService_RetrieveForQuiz_ClampsTopK(t *testing.T) {
	store := memory.NewDocumentStore()
	passages := make([]string, 30)
	for i := range passages {
		passages[i] = "passage"
	}
	saveDoc(t, store, "d", passages, nil)
	retrieval := NewRetrievalService(store, nil, domain.DefaultRetrievalSettings())

	tests := []struct {
		questions int
		want      int
	}{
		{1, 5},
		{5, 5},
		{10, 10},
		{15, 15},
		{40, 15},
	}

	for _, tt := range tests {
		res, err := retrieval.RetrieveForQuiz(context.Background(), "q", domain.SingleDocument("d"), tt.questions)
		require.NoError(t, err)
		assert.Len(t, res.Passages, tt.want, "questions=%d", tt.questions)
	}
}

func TestRetrievalService_FallbackWhenNothingRanks(t *testing.T) {
	twelve := make([]string, 12)
	for i := range twelve {
		twelve[i] = fmt.Sprintf("passage %d", i)
	}

	tests := []struct {
		name        string
		docs        map[string][]string
		order       []string
		target      domain.RetrievalTarget
		wantTexts   []string
		wantSources []string
	}{
		{
			name:        "single document returns every passage",
			docs:        map[string][]string{"d": {"one", "two", "three"}},
			order:       []string{"d"},
			target:      domain.SingleDocument("d"),
			wantTexts:   []string{"one", "two", "three"},
			wantSources: []string{"d", "d", "d"},
		},
		{
			name:        "all documents returns the first ten",
			docs:        map[string][]string{"D1": twelve[:7], "D2": twelve[7:]},
			order:       []string{"D1", "D2"},
			target:      domain.AllDocuments(),
			wantTexts:   twelve[:domain.DefaultFallbackSize],
			wantSources: []string{"D1", "D1", "D1", "D1", "D1", "D1", "D1", "D2", "D2", "D2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewDocumentStore()
			for _, name := range tt.order {
				saveDoc(t, store, name, tt.docs[name], nil)
			}
			// Zero quiz bounds clamp topK to zero, so no passage ranks.
			retrieval := NewRetrievalService(store, nil, domain.RetrievalSettings{})

			res, err := retrieval.RetrieveForQuiz(context.Background(), "quiz", tt.target, 5)

			require.NoError(t, err)
			assert.Equal(t, domain.MethodFallback, res.Method)
			assert.Equal(t, tt.wantTexts, res.Texts())
			assert.Equal(t, tt.wantSources, res.Sources())
		})
	}
}

// extraVectorStore hands back documents carrying more vectors than
// passages, which the memory store refuses to hold.
type extraVectorStore struct {
	*memory.DocumentStore
	doc *domain.Document
}

func (s *extraVectorStore) Get(_ context.Context, _ string) (*domain.Document, error) {
	return s.doc, nil
}

func TestRetrievalService_Single_MoreVectorsThanPassages(t *testing.T) {
	store := &extraVectorStore{
		DocumentStore: memory.NewDocumentStore(),
		doc: &domain.Document{
			Name:     "a",
			FullText: "cat",
			Passages: []string{"cat"},
			Vectors:  []domain.Vector{{1, 0}, {0, 1}},
		},
	}
	embedder := &mockEmbedder{embedFn: keywordVectors("cat", "dog")}
	retrieval := NewRetrievalService(store, embedder, domain.DefaultRetrievalSettings())

	res, err := retrieval.RetrieveForQuery(context.Background(), "cat", domain.SingleDocument("a"), 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, res.Texts())
	assert.Equal(t, domain.MethodVector, res.Method)
}

func TestRetrievalService_All_DocumentCountFromSnapshot(t *testing.T) {
	store := memory.NewDocumentStore()
	saveDoc(t, store, "a", []string{"x"}, nil)
	require.NoError(t, store.Delete(context.Background(), "a"))
	retrieval := NewRetrievalService(store, nil, domain.DefaultRetrievalSettings())

	_, err := retrieval.RetrieveForQuery(context.Background(), "q", domain.AllDocuments(), 3)

	assert.ErrorIs(t, err, domain.ErrNoDocuments)
}
