package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

var (
	errDocumentServiceMissing  = errors.New("document service not configured")
	errRetrievalServiceMissing = errors.New("retrieval service not configured")
	errStudyServiceMissing     = errors.New("study service not configured")
	errSettingsServiceMissing  = errors.New("settings service not configured")
)

// scopeFlags holds the --document/--all pair shared by several commands.
type scopeFlags struct {
	document string
	all      bool
}

func (f *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.document, "document", "d", "", "restrict to one uploaded document")
	cmd.Flags().BoolVarP(&f.all, "all", "a", false, "use every uploaded document")
}

// target resolves the flags. When neither flag is given fallback is used.
func (f *scopeFlags) target(fallback domain.RetrievalTarget) (domain.RetrievalTarget, error) {
	switch {
	case f.all && f.document != "":
		return domain.RetrievalTarget{}, domain.NewError(domain.ErrInvalidInput,
			"--document and --all cannot be combined")
	case f.all:
		return domain.AllDocuments(), nil
	case f.document != "":
		return domain.SingleDocument(f.document), nil
	default:
		return fallback, nil
	}
}

// uploadFiles reads each path and uploads it. name overrides the stored
// name and is only valid with a single path.
func uploadFiles(cmd *cobra.Command, paths []string, name string) error {
	if documentService == nil {
		return errDocumentServiceMissing
	}
	if name != "" && len(paths) > 1 {
		return domain.NewError(domain.ErrInvalidInput, "--name can only be used with a single file")
	}

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		docName := name
		if docName == "" {
			docName = filepath.Base(path)
		}

		result, err := documentService.UploadFile(cmd.Context(), &domain.RawDocument{
			Name:    docName,
			Content: content,
		})
		if err != nil {
			return describe(fmt.Sprintf("failed to upload %s", path), err)
		}

		cmd.Printf("Uploaded %s: %d characters, %d passages, %d embedded\n",
			result.Name, result.TextLength, result.ChunkCount, result.EmbeddingCount)
	}
	return nil
}

// describe wraps err with the failed action and, for errors a user can
// fix, a hint on how to fix it.
func describe(action string, err error) error {
	var hint string
	switch {
	case errors.Is(err, domain.ErrLLMUnavailable):
		hint = "configure a provider with 'study settings llm'"
	case errors.Is(err, domain.ErrNoDocuments):
		hint = "upload material first with --file or 'study upload'"
	case errors.Is(err, domain.ErrDocumentNotFound):
		if name := domain.ContextOf(err)["document"]; name != "" {
			hint = fmt.Sprintf("no document named %q has been uploaded", name)
		}
	case errors.Is(err, domain.ErrAuth):
		hint = "check the API key with 'study settings show'"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		if supported := domain.ContextOf(err)["supported"]; supported != "" {
			hint = "supported types: " + supported
		}
	}

	if hint == "" {
		return fmt.Errorf("%s: %w", action, err)
	}
	return fmt.Errorf("%s: %w (%s)", action, err, hint)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
