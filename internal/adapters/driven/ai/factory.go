// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driven/embedding"
	googleembed "github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driven/embedding/google"
	ollamaembed "github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driven/embedding/openai"
	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driven/embedding/ratelimit"
	anthropicllm "github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driven/llm/anthropic"
	googlellm "github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driven/llm/google"
	ollamallm "github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driven/llm/ollama"
	openaillm "github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driven/llm/openai"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driven"
	"github.com/ArmanHov2006/ai-study-assistant/internal/logger"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the result of AI service initialisation.
type InitResult struct {
	EmbeddingService driven.EmbeddingService
	LLMService       driven.LLMService
	Warnings         []string // Non-fatal issues that caused fallback.
	FellBack         bool     // True if embeddings were unavailable and retrieval uses keywords.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		r.EmbeddingService.Close()
	}
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// Initialise creates and validates both AI services from settings.
// Failures are recorded as warnings: the assistant still runs with
// keyword retrieval and without LLM features.
func Initialise(settings domain.AppSettings) *InitResult {
	result := &InitResult{}

	embed, err := CreateAndValidateEmbeddingService(&settings.Embedding)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
		logger.Warn("embedding disabled: %v", err)
	}
	result.EmbeddingService = embed
	result.FellBack = embed == nil

	llm, err := CreateAndValidateLLMService(&settings.LLM)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
		logger.Warn("LLM disabled: %v", err)
	}
	result.LLMService = llm

	return result
}

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'study settings wizard' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	if svc == nil {
		return nil, nil
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'study settings wizard' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'study settings wizard' to fix",
			domain.ErrLLMUnavailable, err)
	}

	if svc == nil {
		return nil, nil
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'study settings wizard' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}

// ValidateEmbeddingConfig validates an embedding configuration by creating a service and pinging it.
// This is intended for use in the settings wizard to validate credentials on configuration.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	if settings != nil && settings.Provider != "" && !settings.Provider.IsValid() {
		return domain.Errorf(domain.ErrInvalidInput, "unsupported embedding provider: %s", settings.Provider)
	}
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// ValidateLLMConfig validates an LLM configuration by creating a service and pinging it.
// This is intended for use in the settings wizard to validate credentials on configuration.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	if settings != nil && settings.Provider != "" && !settings.Provider.IsValid() {
		return domain.Errorf(domain.ErrInvalidInput, "unsupported LLM provider: %s", settings.Provider)
	}
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateEmbeddingService creates the appropriate embedding service based on settings.
// Every provider is wrapped in the input guard and, when configured, a rate limiter.
// Returns nil if the provider is not configured.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || settings.Provider == "" {
		return nil, nil
	}

	if settings.Provider == domain.AIProviderAnthropic {
		return nil, domain.NewError(domain.ErrInvalidInput,
			"anthropic does not support embeddings, use ollama, openai or google")
	}
	if !settings.Provider.IsValid() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "unsupported embedding provider: %s", settings.Provider)
	}
	if !settings.IsConfigured() {
		return nil, nil
	}

	var (
		svc driven.EmbeddingService
		err error
	)

	switch settings.Provider {
	case domain.AIProviderOllama:
		svc = createOllamaEmbedding(settings)
	case domain.AIProviderOpenAI:
		svc, err = createOpenAIEmbedding(settings)
	case domain.AIProviderGoogle:
		svc, err = createGoogleEmbedding(settings)
	}
	if err != nil {
		return nil, err
	}

	limited := ratelimit.New(svc, ratelimit.Config{RequestsPerSecond: settings.RequestsPerSecond})
	return embedding.NewGuard(limited), nil
}

// CreateLLMService creates the appropriate LLM service based on settings.
// Returns nil if the provider is not configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || settings.Provider == "" {
		return nil, nil
	}
	if settings.Provider.IsValid() && !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaLLM(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAILLM(settings)

	case domain.AIProviderAnthropic:
		return createAnthropicLLM(settings)

	case domain.AIProviderGoogle:
		return createGoogleLLM(settings)

	default:
		return nil, domain.Errorf(domain.ErrInvalidInput, "unsupported LLM provider: %s", settings.Provider)
	}
}

// createOllamaEmbedding creates an Ollama embedding service.
func createOllamaEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	dimensions := domain.EmbeddingDimensions()[settings.Model]
	if dimensions == 0 {
		dimensions = ollamaembed.DefaultDimensions
	}

	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
}

// createOpenAIEmbedding creates an OpenAI embedding service.
func createOpenAIEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createGoogleEmbedding creates a Gemini embedding service.
func createGoogleEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	return googleembed.NewEmbeddingService(context.Background(), googleembed.Config{
		APIKey: settings.APIKey,
		Model:  settings.Model,
	})
}

// createOllamaLLM creates an Ollama LLM service.
func createOllamaLLM(settings *domain.LLMSettings) driven.LLMService {
	return ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createOpenAILLM creates an OpenAI LLM service.
func createOpenAILLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createAnthropicLLM creates an Anthropic LLM service.
func createAnthropicLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return anthropicllm.NewLLMService(anthropicllm.Config{
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		MaxRetries: anthropicllm.DefaultMaxRetries,
	})
}

// createGoogleLLM creates a Gemini LLM service.
func createGoogleLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return googlellm.NewLLMService(context.Background(), googlellm.Config{
		APIKey: settings.APIKey,
		Model:  settings.Model,
	})
}
