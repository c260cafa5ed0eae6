package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

var (
	askScope   scopeFlags
	askSession string
	askTopK    int
	askJSON    bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your material",
	Long: `Answers a question with the LLM. With --document or --all the most relevant
passages are retrieved and sent along as context; without either the question is
answered as general chat. Pass --session to continue an earlier conversation.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

var retrieveScope scopeFlags

var (
	retrieveTopK int
	retrieveJSON bool
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Show the passages a question would retrieve",
	Long: `Ranks passages for a query without calling the LLM. Uses embedding similarity
when vectors are available and keyword overlap otherwise. Searches every document
unless --document is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runRetrieve,
}

func init() {
	askScope.register(askCmd)
	askCmd.Flags().StringVar(&askSession, "session", "", "continue an existing conversation")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "passages to retrieve (0 = configured default)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the reply as JSON")
	rootCmd.AddCommand(askCmd)

	retrieveScope.register(retrieveCmd)
	retrieveCmd.Flags().IntVarP(&retrieveTopK, "top-k", "k", 0, "passages to return (0 = configured default)")
	retrieveCmd.Flags().BoolVar(&retrieveJSON, "json", false, "output passages as JSON")
	rootCmd.AddCommand(retrieveCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if studyService == nil {
		return errStudyServiceMissing
	}

	target, err := askScope.target(domain.RetrievalTarget{})
	if err != nil {
		return err
	}

	reply, err := studyService.Chat(cmd.Context(), domain.ChatRequest{
		Message:   args[0],
		Target:    target,
		SessionID: askSession,
		TopK:      askTopK,
	})
	if err != nil {
		return describe("failed to answer", err)
	}

	if askJSON {
		return printJSON(cmd, reply)
	}

	cmd.Println(reply.Response)
	cmd.Println()
	if len(reply.Sources) > 0 {
		cmd.Printf("Sources: %s\n", strings.Join(reply.Sources, ", "))
	}
	cmd.Printf("Session: %s (%d messages)\n", reply.SessionID, reply.MessageCount)
	return nil
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errRetrievalServiceMissing
	}

	target, err := retrieveScope.target(domain.AllDocuments())
	if err != nil {
		return err
	}

	result, err := retrievalService.RetrieveForQuery(cmd.Context(), args[0], target, retrieveTopK)
	if err != nil {
		return describe("retrieval failed", err)
	}

	if retrieveJSON {
		return printJSON(cmd, result)
	}

	if len(result.Passages) == 0 {
		cmd.Println("No passages found.")
		return nil
	}

	cmd.Printf("Method: %s\n\n", result.Method)
	for i, p := range result.Passages {
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, passageLabel(p), p.Score)
		cmd.Printf("      %s\n\n", strings.ReplaceAll(strings.TrimSpace(p.Text), "\n", "\n      "))
	}
	return nil
}

func passageLabel(p domain.RetrievedPassage) string {
	if p.Source == "" {
		return fmt.Sprintf("passage %d", p.Index)
	}
	return fmt.Sprintf("%s, passage %d", p.Source, p.Index)
}
