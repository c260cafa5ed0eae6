// Package cli provides the command-line interface for the study assistant.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driving"
	"github.com/ArmanHov2006/ai-study-assistant/internal/logger"
)

// version is set at build time via -ldflags or by SetVersion.
var version = "dev"

// Services wired in by main.
var (
	documentService  driving.DocumentService
	retrievalService driving.RetrievalService
	studyService     driving.StudyService
	settingsService  driving.SettingsService
)

// Persistent flags.
var (
	verbose    bool
	inputFiles []string
)

var rootCmd = &cobra.Command{
	Use:   "study",
	Short: "AI study assistant for your course material",
	Long: `Study assistant answers questions, summarises and quizzes you on your own
documents. Uploaded material is split into overlapping passages, embedded when an
embedding provider is configured, and retrieved by similarity or keyword overlap.

Documents live for the lifetime of the process. One-shot commands accept --file to
upload material before running, while 'study serve' and 'study mcp serve' keep it
in memory across requests.

Examples:
  study ask "What is a monad?" --file notes.md --document notes.md
  study quiz --file lecture.pdf --questions 10 --difficulty hard
  study serve --addr :8000 --watch ./course`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRun,
}

// Services holds the driving ports the commands operate on.
type Services struct {
	Document  driving.DocumentService
	Retrieval driving.RetrievalService
	Study     driving.StudyService
	Settings  driving.SettingsService
}

// SetServices wires the application services into the commands.
func SetServices(s Services) {
	documentService = s.Document
	retrievalService = s.Retrieval
	studyService = s.Study
	settingsService = s.Settings
}

// ServiceBuilder builds the services that need AI providers. It runs on
// the first command that uses them and returns a func that releases
// the provider clients.
type ServiceBuilder func() (Services, func(), error)

// offlineAnnotation marks commands (and their children) that run without
// the built services.
const offlineAnnotation = "study:offline"

var (
	buildServices ServiceBuilder
	closeServices func()
)

// SetServiceBuilder defers building the document, retrieval and study
// services until a command needs them.
func SetServiceBuilder(b ServiceBuilder) {
	buildServices = b
}

// Close releases whatever the service builder opened.
func Close() {
	if closeServices != nil {
		closeServices()
		closeServices = nil
	}
}

// SetVersion overrides the version reported by 'study version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringSliceVarP(&inputFiles, "file", "f", nil,
		"upload a file before running the command (repeatable)")
}

func preRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if needsServices(cmd) || len(inputFiles) > 0 {
		if err := ensureServices(); err != nil {
			return err
		}
	}
	if len(inputFiles) == 0 {
		return nil
	}
	return uploadFiles(cmd, inputFiles, "")
}

func needsServices(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[offlineAnnotation]; ok {
			return false
		}
		if c.Name() == "help" || c.Name() == "completion" {
			return false
		}
	}
	return true
}

// ensureServices runs the service builder once. Services already wired
// by SetServices are kept when the builder leaves them nil.
func ensureServices() error {
	if buildServices == nil {
		return nil
	}
	built, closer, err := buildServices()
	if err != nil {
		return err
	}
	buildServices = nil
	closeServices = closer

	if built.Document != nil {
		documentService = built.Document
	}
	if built.Retrieval != nil {
		retrievalService = built.Retrieval
	}
	if built.Study != nil {
		studyService = built.Study
	}
	if built.Settings != nil {
		settingsService = built.Settings
	}
	return nil
}
