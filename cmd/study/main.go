// Command study is an AI study assistant: it answers questions about,
// summarises and quizzes on uploaded course material.
package main

import (
	"fmt"
	"os"

	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driven/ai"
	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driven/config/file"
	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driven/storage/memory"
	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driving/cli"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/services"
	"github.com/ArmanHov2006/ai-study-assistant/internal/extractors"
	"github.com/ArmanHov2006/ai-study-assistant/internal/logger"
	"github.com/ArmanHov2006/ai-study-assistant/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if _, err := file.LoadEnv(); err != nil {
		logger.Warn("ignoring .env: %v", err)
	}

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{Settings: settingsService})
	cli.SetServiceBuilder(func() (cli.Services, func(), error) {
		return buildServices(settings)
	})
	defer cli.Close()

	return cli.Execute()
}

// buildServices connects to the configured AI providers and wires the
// services that use them. Commands that need no AI never call it.
func buildServices(settings *domain.AppSettings) (cli.Services, func(), error) {
	chunks, err := chunker.FromSettings(settings.Retrieval)
	if err != nil {
		return cli.Services{}, nil, fmt.Errorf("invalid retrieval settings: %w", err)
	}

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return cli.Services{}, nil, fmt.Errorf("opening prompts: %w", err)
	}

	aiServices := ai.Initialise(*settings)

	docStore := memory.NewDocumentStore()

	documentService := services.NewDocumentService(docStore, chunks, aiServices.EmbeddingService)
	documentService.SetExtractors(extractors.NewDefaultRegistry())

	retrievalService := services.NewRetrievalService(docStore, aiServices.EmbeddingService, settings.Retrieval)

	studyService := services.NewStudyService(
		docStore,
		memory.NewSessionStore(),
		retrievalService,
		aiServices.LLMService,
		prompts,
	)
	studyService.SetMaxTokens(settings.LLM.MaxTokens)

	return cli.Services{
		Document:  documentService,
		Retrieval: retrievalService,
		Study:     studyService,
	}, aiServices.Close, nil
}
