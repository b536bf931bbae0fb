package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/homework-heap/internal/classification"
	"github.com/Veraticus/homework-heap/internal/config"
	"github.com/Veraticus/homework-heap/internal/engine"
	"github.com/Veraticus/homework-heap/internal/llm"
)

// createClassifier builds the classifier selected by settings. Every provider is
// wrapped in llm.Classifier so its output is sanitized the same way.
func createClassifier(settings config.Settings) (engine.Classifier, error) {
	var client llm.Client

	switch settings.LLM.Provider {
	case config.ProviderRules:
		kc, err := classification.NewKeywordClassifier(settings.Classification.Keywords, settings.Classification.Patterns)
		if err != nil {
			return nil, err
		}
		client = kc
	default:
		c, err := llm.NewClient(settings.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		client = c
	}

	return llm.NewClassifier(client, slog.Default()), nil
}
