package cli

import (
	"github.com/spf13/cobra"
)

var summariseJSON bool

var summariseCmd = &cobra.Command{
	Use:     "summarise [document]",
	Aliases: []string{"summarize"},
	Short:   "Summarise an uploaded document",
	Args:    cobra.ExactArgs(1),
	RunE:    runSummarise,
}

func init() {
	summariseCmd.Flags().BoolVar(&summariseJSON, "json", false, "output the summary as JSON")
	rootCmd.AddCommand(summariseCmd)
}

func runSummarise(cmd *cobra.Command, args []string) error {
	if studyService == nil {
		return errStudyServiceMissing
	}

	summary, err := studyService.Summarise(cmd.Context(), args[0])
	if err != nil {
		return describe("failed to summarise", err)
	}

	if summariseJSON {
		return printJSON(cmd, summary)
	}

	cmd.Printf("Summary of %s\n\n", summary.DocumentName)
	cmd.Println(summary.Summary)
	cmd.Println()
	cmd.Printf("%d -> %d characters (%s)\n", summary.OriginalLength, summary.SummaryLength, summary.CompressionRatio)
	return nil
}
