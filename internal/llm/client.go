package llm

import (
	"context"
	"time"
)

// Client is the classification capability: filenames in, the school-related subset out.
// Implementations may return names outside the input; Classifier sanitizes them.
type Client interface {
	ClassifyFilenames(ctx context.Context, filenames []string) ([]string, error)
}

// Config holds configuration for the LLM backends. It is built once at startup
// and never read from the environment afterwards.
type Config struct {
	Provider       string
	APIKey         string
	Model          string
	BaseURL        string
	ClaudeCodePath string
	Timeout        time.Duration
	// Temperature is nil when unset so an explicit 0 can be told apart from the default.
	Temperature    *float64
	MaxTokens      int
}

// DefaultTemperature is used when Config.Temperature is nil.
const DefaultTemperature = 0.5

// temperature returns the configured sampling temperature or DefaultTemperature.
func (c Config) temperature() float64 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}
