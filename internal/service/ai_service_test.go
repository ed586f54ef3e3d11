package service

import (
	"codequest_backend/internal/config"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIServiceComplete(t *testing.T) {
	var got ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello there"}}]}`))
	}))
	defer server.Close()

	ai := NewAIService(config.AIConfig{BaseURL: server.URL + "/", APIKey: "sk-test", Model: "gpt-test", MaxTokens: 100})
	require.True(t, ai.Configured())

	reply, err := ai.Complete(context.Background(), []AIChatMessage{{Role: "user", Content: "hi"}}, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello there", reply)
	assert.Equal(t, "gpt-test", got.Model)
	assert.Equal(t, 100, got.MaxTokens)
}

func TestAIServiceErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	ai := NewAIService(config.AIConfig{BaseURL: server.URL})
	_, err := ai.Complete(context.Background(), nil, 0)
	assert.ErrorIs(t, err, ErrAINotConfigured)
	assert.False(t, ai.Configured())

	ai.UpdateConfig(config.AIConfig{BaseURL: server.URL, APIKey: "sk-test"})
	assert.True(t, ai.Configured())
	_, err = ai.Complete(context.Background(), nil, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
