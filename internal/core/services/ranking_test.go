package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Vector
		want float64
	}{
		{"identical", domain.Vector{1, 2, 3}, domain.Vector{1, 2, 3}, 1},
		{"orthogonal", domain.Vector{1, 0}, domain.Vector{0, 1}, 0},
		{"opposite", domain.Vector{1, 0}, domain.Vector{-1, 0}, -1},
		{"scaled", domain.Vector{1, 1}, domain.Vector{3, 3}, 1},
		{"zero query", domain.Vector{0, 0}, domain.Vector{1, 1}, 0},
		{"zero passage", domain.Vector{1, 1}, domain.Vector{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-6)
		})
	}
}

func TestRankBySimilarity_OrdersByScore(t *testing.T) {
	query := domain.Vector{1, 0}
	vectors := []domain.Vector{{0, 1}, {1, 0}, {1, 1}}
	passages := []string{"far", "exact", "close"}

	got, err := RankBySimilarity(query, vectors, passages, 3)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "exact", got[0].Text)
	assert.Equal(t, 1, got[0].Index)
	assert.InDelta(t, 1.0, got[0].Score, 1e-6)
	assert.Equal(t, "close", got[1].Text)
	assert.InDelta(t, 1/math.Sqrt2, got[1].Score, 1e-6)
	assert.Equal(t, "far", got[2].Text)
}

func TestRankBySimilarity_TopKBound(t *testing.T) {
	vectors := []domain.Vector{{1, 0}, {0, 1}, {1, 1}}
	passages := []string{"a", "b", "c"}

	for _, k := range []int{-1, 0, 1, 2, 3, 10} {
		got, err := RankBySimilarity(domain.Vector{1, 0}, vectors, passages, k)
		require.NoError(t, err)
		want := k
		if k < 0 {
			want = 0
		}
		if k > len(passages) {
			want = len(passages)
		}
		assert.Len(t, got, want, "topK=%d", k)
	}
}

func TestRankBySimilarity_SelfMatchFirst(t *testing.T) {
	vectors := []domain.Vector{{0.2, 0.9, 0.1}, {0.7, 0.1, 0.7}, {0.5, 0.5, 0.5}}
	passages := []string{"p0", "p1", "p2"}

	for i, v := range vectors {
		got, err := RankBySimilarity(v, vectors, passages, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, i, got[0].Index)
	}
}

func TestRankBySimilarity_TiesKeepOrder(t *testing.T) {
	vectors := []domain.Vector{{1, 0}, {2, 0}, {3, 0}}
	passages := []string{"first", "second", "third"}

	got, err := RankBySimilarity(domain.Vector{1, 0}, vectors, passages, 3)

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, []int{got[0].Index, got[1].Index, got[2].Index})
}

func TestRankBySimilarity_CountMismatch(t *testing.T) {
	_, err := RankBySimilarity(domain.Vector{1}, []domain.Vector{{1}}, []string{"a", "b"}, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	assert.Equal(t, "1", domain.ContextOf(err)["vectors"])
	assert.Equal(t, "2", domain.ContextOf(err)["passages"])
}

func TestRankBySimilarity_LengthMismatch(t *testing.T) {
	_, err := RankBySimilarity(domain.Vector{1, 0}, []domain.Vector{{1, 0, 0}}, []string{"a"}, 1)

	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestRankBySimilarity_Empty(t *testing.T) {
	got, err := RankBySimilarity(domain.Vector{1}, nil, nil, 3)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRankByKeyword_Scoring(t *testing.T) {
	passages := []string{
		"the cat sat on the mat",
		"dogs and cats",
		"The Dog ran far away",
	}

	got := RankByKeyword("dog ran", passages, 3)

	require.Len(t, got, 3)
	assert.Equal(t, 2, got[0].Index)
	assert.Equal(t, 2.0, got[0].Score)
	// Zero-score passages still rank, in original order.
	assert.Equal(t, 0, got[1].Index)
	assert.Equal(t, 0.0, got[1].Score)
	assert.Equal(t, 1, got[2].Index)
}

func TestRankByKeyword_DistinctTokens(t *testing.T) {
	// Repeated words count once on both sides.
	got := RankByKeyword("cell cell cell", []string{"cell cell membrane", "nucleus"}, 1)

	require.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].Score)
	assert.Equal(t, "cell cell membrane", got[0].Text)
}

func TestRankByKeyword_TopK(t *testing.T) {
	passages := []string{"a", "b", "c", "d"}

	assert.Len(t, RankByKeyword("a", passages, 2), 2)
	assert.Len(t, RankByKeyword("a", passages, 10), 4)
	assert.Empty(t, RankByKeyword("a", passages, 0))
}

func TestRankByKeyword_EmptyPassages(t *testing.T) {
	got := RankByKeyword("anything", nil, 3)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankByKeyword_EmptyQuery(t *testing.T) {
	got := RankByKeyword("   ", []string{"x", "y"}, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].Text)
	assert.Equal(t, "y", got[1].Text)
}
