package services

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

// CosineSimilarity returns dot(a,b) / (|a| * |b|).
// It returns 0 when either vector has zero magnitude.
// The vectors must have equal length.
func CosineSimilarity(a, b domain.Vector) float64 {
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// RankBySimilarity scores every passage against the query vector and
// returns the best min(topK, len(passages)) in descending score order.
// Ties keep passage order. Index on each result is the position in
// passages. Source is left empty for the caller to fill.
func RankBySimilarity(query domain.Vector, vectors []domain.Vector, passages []string, topK int) ([]domain.RetrievedPassage, error) {
	if len(vectors) != len(passages) {
		return nil, domain.Errorf(domain.ErrDimensionMismatch,
			"%d vectors for %d passages", len(vectors), len(passages)).
			WithContext("vectors", strconv.Itoa(len(vectors))).
			WithContext("passages", strconv.Itoa(len(passages)))
	}
	if topK <= 0 || len(passages) == 0 {
		return []domain.RetrievedPassage{}, nil
	}

	scored := make([]domain.RetrievedPassage, len(passages))
	for i, v := range vectors {
		if len(v) != len(query) {
			return nil, domain.Errorf(domain.ErrDimensionMismatch,
				"passage %d has %d dimensions, query has %d", i, len(v), len(query)).
				WithContext("expected", strconv.Itoa(len(query))).
				WithContext("actual", strconv.Itoa(len(v)))
		}
		scored[i] = domain.RetrievedPassage{
			Text:  passages[i],
			Score: CosineSimilarity(query, v),
			Index: i,
		}
	}

	return topRanked(scored, topK), nil
}

// RankByKeyword scores passages by the number of distinct lowercase
// whitespace-separated tokens they share with the query. Passages with no
// overlap still rank, after every passage that has some.
func RankByKeyword(query string, passages []string, topK int) []domain.RetrievedPassage {
	if topK <= 0 || len(passages) == 0 {
		return []domain.RetrievedPassage{}
	}

	queryTokens := tokenSet(query)
	scored := make([]domain.RetrievedPassage, len(passages))
	for i, p := range passages {
		overlap := 0
		for tok := range tokenSet(p) {
			if _, ok := queryTokens[tok]; ok {
				overlap++
			}
		}
		scored[i] = domain.RetrievedPassage{
			Text:  p,
			Score: float64(overlap),
			Index: i,
		}
	}

	return topRanked(scored, topK)
}

// topRanked stable-sorts by score, highest first, and truncates to topK.
func topRanked(scored []domain.RetrievedPassage, topK int) []domain.RetrievedPassage {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if topK < len(scored) {
		scored = scored[:topK]
	}
	return scored
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
