// Package chunker provides a fixed-size, overlapping passage splitter.
package chunker

import (
	"strconv"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

// DefaultChunkSize is the default number of characters per passage.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = domain.DefaultChunkOverlap

// Processor splits document text into fixed-size overlapping passages.
// Sizes are counted in characters (runes), so multi-byte text is never
// cut inside a character.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the passage size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithOverlap sets the overlap between passages in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// New creates a chunker with the given options.
// The window must advance on every step, so the overlap has to be
// strictly smaller than the chunk size.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.chunkSize <= 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "chunk size must be positive, got %d", p.chunkSize)
	}
	if p.overlap < 0 || p.overlap >= p.chunkSize {
		return nil, domain.Errorf(domain.ErrInvalidInput,
			"overlap must be at least 0 and smaller than chunk size %d, got %d", p.chunkSize, p.overlap).
			WithContext("chunk_size", strconv.Itoa(p.chunkSize)).
			WithContext("overlap", strconv.Itoa(p.overlap))
	}

	return p, nil
}

// FromSettings creates a chunker from retrieval settings.
func FromSettings(s domain.RetrievalSettings) (*Processor, error) {
	return New(WithChunkSize(s.ChunkSize), WithOverlap(s.ChunkOverlap))
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the passage window length.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns how many characters consecutive passages share.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Chunk splits text into passages.
//
// Empty text yields no passages. Text shorter than the chunk size is a
// single passage. Otherwise windows of chunkSize start at multiples of
// (chunkSize - overlap) until the start reaches the end of the text; the
// last window may be short.
func (p *Processor) Chunk(text string) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	n := len(runes)
	if n < p.chunkSize {
		return []string{text}
	}

	stride := p.chunkSize - p.overlap
	passages := make([]string, 0, n/stride+1)

	for start := 0; start < n; start += stride {
		end := start + p.chunkSize
		if end > n {
			end = n
		}
		if end <= start {
			continue
		}
		passages = append(passages, string(runes[start:end]))
	}

	return passages
}
