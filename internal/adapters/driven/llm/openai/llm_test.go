package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driven"
)

type capturedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens   int      `json:"max_tokens"`
	Temperature float32  `json:"temperature"`
	Stop        []string `json:"stop"`
}

func newTestService(t *testing.T, reply string, captured *capturedRequest) *LLMService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": reply}}},
		})
	}))
	t.Cleanup(srv.Close)

	svc, err := NewLLMService(LLMConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService(t *testing.T) {
	_, err := NewLLMService(LLMConfig{})
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)

	svc, err := NewLLMService(LLMConfig{APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, DefaultLLMModel, svc.ModelName())
}

func TestGenerate(t *testing.T) {
	var req capturedRequest
	svc := newTestService(t, "Photosynthesis turns light into sugar.", &req)

	out, err := svc.Generate(context.Background(), "Summarise this", driven.GenerateOptions{
		MaxTokens:   256,
		Temperature: 0.3,
		StopWords:   []string{"END"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis turns light into sugar.", out)

	assert.Equal(t, DefaultLLMModel, req.Model)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Equal(t, 256, req.MaxTokens)
	assert.InDelta(t, 0.3, req.Temperature, 0.001)
	assert.Equal(t, []string{"END"}, req.Stop)
}

func TestChat_KeepsRoles(t *testing.T) {
	var req capturedRequest
	svc := newTestService(t, "Mitochondria.", &req)

	_, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: driven.RoleSystem, Content: "You are a tutor."},
		{Role: driven.RoleUser, Content: "What makes ATP?"},
		{Role: driven.RoleAssistant, Content: "Which organelle?"},
		{Role: driven.RoleUser, Content: "Yes"},
	}, driven.ChatOptions{})
	require.NoError(t, err)

	roles := make([]string, len(req.Messages))
	for i, m := range req.Messages {
		roles[i] = m.Role
	}
	assert.Equal(t, []string{"system", "user", "assistant", "user"}, roles)
}

func TestChat_EmptyReply(t *testing.T) {
	svc := newTestService(t, "", nil)

	_, err := svc.Chat(context.Background(), []driven.ChatMessage{{Role: driven.RoleUser, Content: "hi"}}, driven.ChatOptions{})
	assert.ErrorIs(t, err, domain.ErrServiceFailure)
}

func TestChat_AuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "sk-bad", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "hi", driven.GenerateOptions{})
	assert.ErrorIs(t, err, domain.ErrAuth)
	assert.ErrorIs(t, svc.Ping(context.Background()), domain.ErrAuth)
}
