package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driving/tui"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

var chatScope scopeFlags

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Launch the interactive chat UI",
	Long: `Launch an interactive terminal chat about your material.

Pass --document or --all to ground answers in uploaded documents (use --file to
upload them first); without either the assistant answers as general chat.

Controls:
  Enter      - Send message
  PgUp/PgDn  - Scroll the conversation
  Ctrl+N     - Start a new session
  Esc/Ctrl+C - Quit`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatScope.register(chatCmd)
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat UI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("chat UI crashed: %v", r)
		}
	}()

	target, err := chatScope.target(domain.RetrievalTarget{})
	if err != nil {
		return err
	}

	app, err := tui.NewApp(tui.NewPorts(studyService, documentService), target)
	if err != nil {
		return fmt.Errorf("failed to create chat UI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("chat UI error: %w", err)
	}
	return nil
}
