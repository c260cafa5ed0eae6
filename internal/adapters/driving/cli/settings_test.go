package cli

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

// Test helper functions in settings.go

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Very long key",
			input:    "sk-proj-1234567890abcdefghijklmnop",
			expected: "sk-p...mnop",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestProviderLabel(t *testing.T) {
	assert.Equal(t, "(none)", providerLabel(""))
	assert.Equal(t, "Ollama (local)", providerLabel(domain.AIProviderOllama))
}

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range settingsCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.ElementsMatch(t, []string{"show", "wizard", "retrieval", "embedding", "llm"}, names)
}

func TestSettingsShowCmd_Defaults(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Embedding]")
	assert.Contains(t, out, "Provider: (none)")
	assert.Contains(t, out, "Status: not configured")
	assert.Contains(t, out, "[Retrieval]")
	assert.Contains(t, out, "Chunk size: 1000")
	assert.Contains(t, out, "Chunk overlap: 200")
	assert.Contains(t, out, "Top K: 3")
	assert.Contains(t, out, "Quiz passages: 5-15")
	assert.Contains(t, out, "Address: :8000")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsShowCmd_MasksAPIKey(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, ts.Settings.SetLLMProvider(domain.AIProviderOpenAI, "", "sk-test-1234567890"))

	out, err := execute("settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Provider: OpenAI (cloud)")
	assert.Contains(t, out, "API Key: sk-t...7890")
	assert.NotContains(t, out, "sk-test-1234567890")
}

func TestSettingsRetrievalCmd_Flags(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("settings", "retrieval", "--chunk-size", "500", "--chunk-overlap", "50")

	require.NoError(t, err)
	assert.Contains(t, out, "chunk size 500, overlap 50, top-k 3")

	settings, err := ts.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 500, settings.Retrieval.ChunkSize)
	assert.Equal(t, 50, settings.Retrieval.ChunkOverlap)
	assert.Equal(t, 3, settings.Retrieval.TopK)
}

func TestSettingsRetrievalCmd_RejectsOverlapNotBelowSize(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("settings", "retrieval", "--chunk-size", "100", "--chunk-overlap", "100")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	settings, err := ts.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultChunkSize, settings.Retrieval.ChunkSize)
}

func TestSettingsRetrievalCmd_Interactive(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	rootCmd.SetIn(strings.NewReader("800\n\n4\n"))

	_, err := execute("settings", "retrieval")

	require.NoError(t, err)
	settings, err := ts.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 800, settings.Retrieval.ChunkSize)
	assert.Equal(t, domain.DefaultChunkOverlap, settings.Retrieval.ChunkOverlap)
	assert.Equal(t, 4, settings.Retrieval.TopK)
}

func TestSettingsWizardCmd_LocalLLMWithoutEmbeddings(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	// LLM: Ollama (4th), default model; embeddings: no; retrieval: keep defaults.
	rootCmd.SetIn(strings.NewReader("4\n\nn\n\n\n\n"))

	out, err := execute("settings", "wizard")

	require.NoError(t, err)
	assert.Contains(t, out, "LLM provider configured: Ollama (local) (llama3.2)")
	assert.Contains(t, out, "Retrieval will use keyword ranking.")
	assert.Contains(t, out, "All settings are valid and saved.")

	settings, err := ts.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)
	assert.Empty(t, settings.Embedding.Provider)
}

func TestPromptInt(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	buf := new(strings.Builder)
	settingsCmd.SetOut(buf)
	defer settingsCmd.SetOut(nil)

	reader := bufio.NewReader(strings.NewReader("\n12\nabc\n"))

	assert.Equal(t, 7, promptInt(settingsCmd, reader, "Value", 7))
	assert.Equal(t, 12, promptInt(settingsCmd, reader, "Value", 7))
	assert.Equal(t, 7, promptInt(settingsCmd, reader, "Value", 7))
	assert.Contains(t, buf.String(), "Not a number, keeping 7")
}
