package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return the
	// embedded default or an error when none exists.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptChatSystem is the system prompt for every chat turn.
	// This prompt has no format placeholders.
	PromptChatSystem = "chat_system"

	// PromptChatContext wraps retrieved passages around the user's question.
	// The template expects %s (context) and %s (question) placeholders.
	PromptChatContext = "chat_context"

	// PromptSummarise creates summaries of document content.
	// The template expects a %s placeholder for the document text.
	PromptSummarise = "summarise"

	// PromptQuiz generates quiz questions as JSON.
	// The template expects %d (question count), %s (difficulty) and %s (content).
	PromptQuiz = "quiz"
)
