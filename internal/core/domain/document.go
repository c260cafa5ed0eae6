package domain

import (
	"time"
	"unicode/utf8"
)

// Vector is a fixed-length embedding of a passage.
// A nil Vector marks a passage that has no embedding.
type Vector []float32

// NoVector is the explicit marker for a passage without an embedding.
// It is distinct from a zero vector of real dimensionality.
var NoVector Vector

// Present reports whether the slot holds a real embedding.
func (v Vector) Present() bool {
	return len(v) > 0
}

// Document is an uploaded text, split into passages.
type Document struct {
	// Name is the unique, case-sensitive key. Re-uploading a name
	// replaces the whole record.
	Name string

	// FullText is the decoded text as uploaded.
	FullText string

	// Passages are ordered spans of FullText produced by the chunker.
	Passages []string

	// Vectors holds one embedding per passage, in passage order.
	// It is empty when embeddings are unavailable and may be shorter
	// than Passages when embedding stopped part way.
	Vectors []Vector

	// CreatedAt is when the document was uploaded.
	CreatedAt time.Time
}

// Length returns the length of the full text in characters.
func (d *Document) Length() int {
	return utf8.RuneCountInString(d.FullText)
}

// HasVectors reports whether at least one passage is embedded.
func (d *Document) HasVectors() bool {
	return len(d.Vectors) > 0
}

// VectorAt returns the vector for passage i, or NoVector.
func (d *Document) VectorAt(i int) Vector {
	if i < 0 || i >= len(d.Vectors) {
		return NoVector
	}
	return d.Vectors[i]
}

// Clone returns a copy that shares no slices with d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Passages = append([]string(nil), d.Passages...)
	if d.Vectors != nil {
		cp.Vectors = make([]Vector, len(d.Vectors))
		for i, v := range d.Vectors {
			cp.Vectors[i] = append(Vector(nil), v...)
		}
	}
	return &cp
}

// DocumentSummary is a listing entry.
type DocumentSummary struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
}

// DocumentStats describes how a document was processed.
type DocumentStats struct {
	Name              string `json:"filename"`
	TextLength        int    `json:"total_length"`
	ChunkCount        int    `json:"chunk_count"`
	EmbeddingCount    int    `json:"embedding_count"`
	HasEmbeddings     bool   `json:"has_embeddings"`
	FirstChunkPreview string `json:"first_chunk_preview"`
}

// UploadResult reports the outcome of an upload.
type UploadResult struct {
	Name           string `json:"filename"`
	TextLength     int    `json:"text_length"`
	ChunkCount     int    `json:"chunk_count"`
	EmbeddingCount int    `json:"embedding_count"`
}

// Collection holds every stored passage as three parallel sequences.
// Vectors[i] is NoVector when passage i has no embedding.
// Documents is the number of stored documents in the same snapshot.
type Collection struct {
	Passages  []string
	Vectors   []Vector
	Sources   []string
	Documents int
}

// Len returns the number of passages in the collection.
func (c *Collection) Len() int {
	return len(c.Passages)
}
