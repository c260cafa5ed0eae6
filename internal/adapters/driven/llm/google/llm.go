// Package google provides an LLM service adapter using the Gemini API.
package google

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	genaiopt "google.golang.org/api/option"

	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driven/ai/aierr"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-1.5-flash"

// Config holds configuration for the Gemini LLM service.
type Config struct {
	// APIKey is the Google AI Studio API key (required).
	APIKey string

	// Model is the LLM model to use (default: gemini-1.5-flash).
	Model string
}

// LLMService provides LLM operations using the Gemini API.
type LLMService struct {
	client *genai.Client
	model  string
}

// NewLLMService creates a new Gemini LLM service.
func NewLLMService(ctx context.Context, cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, domain.NewError(domain.ErrConfigNotFound, "google: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, genaiopt.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, aierr.FromGoogle(err)
	}

	return &LLMService{client: client, model: cfg.Model}, nil
}

// generativeModel returns a model handle configured for one call.
func (s *LLMService) generativeModel(maxTokens int, temperature float64) *genai.GenerativeModel {
	model := s.client.GenerativeModel(s.model)
	if maxTokens > 0 {
		model.SetMaxOutputTokens(int32(maxTokens))
	}
	if temperature > 0 {
		model.SetTemperature(float32(temperature))
	}
	return model
}

// Generate produces text completion from a prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	model := s.generativeModel(opts.MaxTokens, opts.Temperature)
	model.StopSequences = opts.StopWords

	rsp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", aierr.FromGoogle(err)
	}
	return responseText(rsp)
}

// Chat conducts a multi-turn conversation. The final message is sent
// and everything before it becomes chat history.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	system, rest := driven.SplitSystem(messages)
	if len(rest) == 0 {
		return "", domain.NewError(domain.ErrInvalidInput, "google: chat needs at least one message")
	}

	model := s.generativeModel(opts.MaxTokens, opts.Temperature)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	cs := model.StartChat()
	last := rest[len(rest)-1]
	for _, msg := range rest[:len(rest)-1] {
		role := "user"
		if msg.Role == driven.RoleAssistant {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	rsp, err := cs.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", aierr.FromGoogle(err)
	}
	return responseText(rsp)
}

func responseText(rsp *genai.GenerateContentResponse) (string, error) {
	if rsp == nil || len(rsp.Candidates) == 0 || rsp.Candidates[0].Content == nil {
		return "", aierr.EmptyResponse("google", "candidates")
	}

	var b strings.Builder
	for _, part := range rsp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", aierr.EmptyResponse("google", "text")
	}
	return b.String(), nil
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping fetches the model metadata, which validates the key and model name.
func (s *LLMService) Ping(ctx context.Context) error {
	if _, err := s.client.GenerativeModel(s.model).Info(ctx); err != nil {
		return aierr.FromGoogle(err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *LLMService) Close() error {
	return s.client.Close()
}
