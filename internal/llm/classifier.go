package llm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Veraticus/homework-heap/internal/common"
	"github.com/Veraticus/homework-heap/internal/model"
)

// Classifier adapts any Client to the pipeline. It never returns an error:
// capability failures degrade to an empty result with a warning, and names the
// capability invents are dropped before they can reach the filesystem.
type Classifier struct {
	client Client
	logger *slog.Logger
	mu     sync.Mutex
}

// NewClassifier wraps client.
func NewClassifier(client Client, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		client: client,
		logger: logger,
	}
}

// Classify returns the subset of filenames the capability judged school-related.
func (c *Classifier) Classify(ctx context.Context, filenames []string) model.ClassificationResult {
	if len(filenames) == 0 {
		return model.ClassificationResult{Files: []string{}}
	}

	// Calls are serialized so output order stays deterministic within a run.
	c.mu.Lock()
	raw, err := c.client.ClassifyFilenames(ctx, filenames)
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("classification failed", "error", err, "candidates", len(filenames))
		return model.ClassificationResult{
			Files:    []string{},
			Warnings: []string{fmt.Sprintf("Error classifying filenames: %v", err)},
			Err:      fmt.Errorf("%w: %w", common.ErrClassificationFailed, err),
		}
	}

	result := Sanitize(raw, filenames)
	if result.Anomalies > 0 {
		c.logger.Warn("classifier returned unknown filenames", "count", result.Anomalies)
	}
	c.logger.Debug("filenames classified",
		"candidates", len(filenames),
		"matched", len(result.Files))

	return result
}

// Sanitize keeps only names present in input, collapsing duplicates while preserving
// first-seen order. Each returned name not in input counts as one anomaly.
func Sanitize(returned, input []string) model.ClassificationResult {
	allowed := make(map[string]struct{}, len(input))
	for _, name := range input {
		allowed[name] = struct{}{}
	}

	result := model.ClassificationResult{Files: make([]string, 0, len(returned))}
	seen := make(map[string]struct{}, len(returned))
	for _, name := range returned {
		if _, ok := allowed[name]; !ok {
			result.Anomalies++
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		result.Files = append(result.Files, name)
	}

	if result.Anomalies > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Classifier returned %d invalid filename(s) that weren't in the original list", result.Anomalies))
	}
	return result
}
