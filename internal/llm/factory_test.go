package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client, err := NewClient(Config{Provider: "OpenAI", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &openAIClient{}, client)

	client, err = NewClient(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &openAIClient{}, client)

	client, err = NewClient(Config{Provider: ProviderAnthropic, APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &anthropicClient{}, client)

	_, err = NewClient(Config{Provider: "gemini"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}
