package domain

// UnknownSource labels a passage whose source document cannot be resolved.
const UnknownSource = "unknown"

// RetrievalTarget selects which documents a query runs against.
// Exactly one of DocumentName or AllDocuments is expected to be set.
type RetrievalTarget struct {
	DocumentName string
	AllDocuments bool
}

// SingleDocument returns a target for one named document.
func SingleDocument(name string) RetrievalTarget {
	return RetrievalTarget{DocumentName: name}
}

// AllDocuments returns a target spanning every stored document.
func AllDocuments() RetrievalTarget {
	return RetrievalTarget{AllDocuments: true}
}

// IsSet reports whether the target names any scope at all.
func (t RetrievalTarget) IsSet() bool {
	return t.AllDocuments || t.DocumentName != ""
}

// RetrievalMethod records which ranking path produced a result.
type RetrievalMethod string

const (
	// MethodVector ranks passages by cosine similarity.
	MethodVector RetrievalMethod = "vector"

	// MethodKeyword ranks passages by token overlap.
	MethodKeyword RetrievalMethod = "keyword"

	// MethodFallback returns passages without ranking.
	MethodFallback RetrievalMethod = "fallback"
)

// RetrievedPassage is a passage selected for a query.
type RetrievedPassage struct {
	// Text is the passage content.
	Text string `json:"text"`

	// Score is the similarity or overlap score. Zero for fallback results.
	Score float64 `json:"score"`

	// Source is the name of the document the passage came from.
	Source string `json:"source"`

	// Index is the passage position in the set it was ranked from.
	Index int `json:"index"`
}

// RetrievalResult is the ordered output of one retrieval.
type RetrievalResult struct {
	Passages []RetrievedPassage `json:"passages"`
	Method   RetrievalMethod    `json:"method"`
}

// Texts returns the passage texts in rank order.
func (r *RetrievalResult) Texts() []string {
	out := make([]string, len(r.Passages))
	for i, p := range r.Passages {
		out[i] = p.Text
	}
	return out
}

// Sources returns the source names in rank order. The result always has
// the same length as Passages; unresolved sources read UnknownSource.
func (r *RetrievalResult) Sources() []string {
	out := make([]string, len(r.Passages))
	for i, p := range r.Passages {
		if p.Source == "" {
			out[i] = UnknownSource
			continue
		}
		out[i] = p.Source
	}
	return out
}
