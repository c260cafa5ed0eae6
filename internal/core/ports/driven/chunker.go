package driven

// Chunker splits document text into overlapping passages.
type Chunker interface {
	// Chunk returns the passages of text in document order.
	Chunk(text string) []string

	// ChunkSize returns the passage window length in characters.
	ChunkSize() int

	// Overlap returns how many characters consecutive passages share.
	Overlap() int
}
