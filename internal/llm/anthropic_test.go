package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnthropicClient(t *testing.T) {
	_, err := newAnthropicClient(Config{})
	require.Error(t, err)

	client, err := newAnthropicClient(Config{APIKey: "test-key"})
	require.NoError(t, err)
	c := client.(*anthropicClient)
	assert.Equal(t, "claude-3-5-haiku-latest", c.model)
	assert.Equal(t, int64(1024), c.maxTokens)
}

func anthropicServer(t *testing.T, status int, text string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"overloaded"}}`))
			return
		}

		resp := map[string]any{
			"id":            "msg_01",
			"type":          "message",
			"role":          "assistant",
			"model":         "claude-3-5-haiku-latest",
			"stop_reason":   "end_turn",
			"stop_sequence": nil,
			"content": []map[string]any{
				{"type": "text", "text": text},
			},
			"usage": map[string]int{"input_tokens": 12, "output_tokens": 8},
		}
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestAnthropicClient_ClassifyFilenames(t *testing.T) {
	var calls atomic.Int32
	server := anthropicServer(t, http.StatusOK, `{"school_related_files": ["Lecture3.pdf"]}`, &calls)

	client, err := newAnthropicClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	got, err := client.ClassifyFilenames(context.Background(), []string{"Lecture3.pdf", "ticket.pdf"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Lecture3.pdf"}, got)
	assert.Equal(t, int32(1), calls.Load())
}

func TestAnthropicClient_ErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := anthropicServer(t, http.StatusInternalServerError, "", &calls)

	client, err := newAnthropicClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.ClassifyFilenames(context.Background(), []string{"a.pdf"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	result := NewClassifier(client, nil).Classify(context.Background(), []string{"a.pdf"})
	assert.True(t, result.Empty())
	assert.Len(t, result.Warnings, 1)
}
