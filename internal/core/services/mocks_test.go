package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService for testing.
// It maps text to a vector through embedFn, or fails after failAfter calls.
type mockEmbedder struct {
	mu        sync.Mutex
	embedFn   func(text string) []float32
	err       error
	failAfter int // fail every call after this many successes; 0 = never
	calls     int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.failAfter > 0 && m.calls > m.failAfter {
		return nil, domain.NewError(domain.ErrConnection, "embedding backend went away")
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyInput
	}
	if m.embedFn != nil {
		return m.embedFn(text), nil
	}
	return []float32{1, 0}, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int              { return 2 }
func (m *mockEmbedder) ModelName() string            { return "mock-embed" }
func (m *mockEmbedder) Ping(_ context.Context) error { return m.err }
func (m *mockEmbedder) Close() error                 { return nil }

// mockLLM implements driven.LLMService for testing.
// It records the last prompt and chat messages it received.
type mockLLM struct {
	response     string
	err          error
	lastPrompt   string
	lastMessages []driven.ChatMessage
	lastMaxToken int
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.lastPrompt = prompt
	m.lastMaxToken = opts.MaxTokens
	return m.response, m.err
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.lastMessages = append([]driven.ChatMessage(nil), messages...)
	m.lastMaxToken = opts.MaxTokens
	return m.response, m.err
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return m.err }
func (m *mockLLM) Close() error                 { return nil }

// mockPrompts implements driven.PromptStore with fixed templates.
type mockPrompts struct {
	templates map[string]string
}

func newMockPrompts() *mockPrompts {
	return &mockPrompts{templates: map[string]string{
		driven.PromptChatSystem:  "SYSTEM",
		driven.PromptChatContext: "CONTEXT:\n%s\nQUESTION: %s",
		driven.PromptSummarise:   "SUMMARISE: %s",
		driven.PromptQuiz:        "QUIZ %d %s: %s",
	}}
}

func (m *mockPrompts) Load(name string) (string, error) {
	if t, ok := m.templates[name]; ok {
		return t, nil
	}
	return "", errors.New("unknown prompt " + name)
}

func (m *mockPrompts) Reload() {}

// mockValidator implements driven.AIConfigValidator for testing.
type mockValidator struct {
	embedErr error
	llmErr   error
}

func (m *mockValidator) ValidateEmbedding(_ *domain.EmbeddingSettings) error { return m.embedErr }
func (m *mockValidator) ValidateLLM(_ *domain.LLMSettings) error             { return m.llmErr }

// fixedChunker implements driven.Chunker by returning preset passages.
type fixedChunker struct {
	passages []string
}

func (c *fixedChunker) Chunk(_ string) []string { return c.passages }
func (c *fixedChunker) ChunkSize() int          { return 10 }
func (c *fixedChunker) Overlap() int            { return 0 }

// keywordVectors embeds text as presence flags for a fixed vocabulary,
// giving predictable cosine similarity between passages and queries.
func keywordVectors(vocab ...string) func(string) []float32 {
	return func(text string) []float32 {
		lower := strings.ToLower(text)
		v := make([]float32, len(vocab))
		for i, w := range vocab {
			if strings.Contains(lower, w) {
				v[i] = 1
			}
		}
		return v
	}
}
