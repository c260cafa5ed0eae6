package cli

import (
	"github.com/spf13/cobra"
)

var uploadName string

var uploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload study material",
	Long: `Extracts text from each file, splits it into passages and embeds them when an
embedding provider is configured. Plain text, Markdown, HTML, PDF and DOCX are
supported. Uploading a name that already exists replaces that document.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage uploaded documents",
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete an uploaded document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsDelete,
}

var documentsInspectCmd = &cobra.Command{
	Use:   "inspect [name]",
	Short: "Show chunking and embedding details for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsInspect,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadName, "name", "", "store the document under this name (single file only)")
	rootCmd.AddCommand(uploadCmd)

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	documentsCmd.AddCommand(documentsInspectCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	return uploadFiles(cmd, args, uploadName)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errDocumentServiceMissing
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return describe("failed to list documents", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents uploaded.")
		return nil
	}

	cmd.Printf("Documents (%d):\n", len(docs))
	for _, doc := range docs {
		cmd.Printf("  %s (%d characters)\n", doc.Name, doc.Length)
	}
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errDocumentServiceMissing
	}

	if err := documentService.Delete(cmd.Context(), args[0]); err != nil {
		return describe("failed to delete document", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

func runDocumentsInspect(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errDocumentServiceMissing
	}

	stats, err := documentService.Inspect(cmd.Context(), args[0])
	if err != nil {
		return describe("failed to inspect document", err)
	}

	cmd.Printf("Document: %s\n", stats.Name)
	cmd.Printf("  Characters: %d\n", stats.TextLength)
	cmd.Printf("  Passages:   %d\n", stats.ChunkCount)
	cmd.Printf("  Embeddings: %d\n", stats.EmbeddingCount)
	if stats.FirstChunkPreview != "" {
		cmd.Println()
		cmd.Println("First passage:")
		cmd.Printf("  %s\n", stats.FirstChunkPreview)
	}
	return nil
}
