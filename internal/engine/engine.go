// Package engine runs the homework-heap pipeline: validate the scan root, list candidate
// files, classify them, let the operator review the list once, move the approved files,
// ask about cleanup, and report.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/homework-heap/internal/cleanup"
	"github.com/Veraticus/homework-heap/internal/model"
	"github.com/Veraticus/homework-heap/internal/relocate"
	"github.com/Veraticus/homework-heap/internal/report"
	"github.com/Veraticus/homework-heap/internal/scan"
	"github.com/Veraticus/homework-heap/internal/service"
)

// DefaultHoldingName is the folder created inside the scan root for moved files.
const DefaultHoldingName = "Old Schoolwork"

// Config holds the settings of a single run.
type Config struct {
	// Root is the directory to organize. It must be FolderName directly under Home.
	Root        string
	Home        string
	FolderName  string
	Extension   string
	HoldingName string
	// Provider and RunID are recorded in the run history.
	Provider string
	RunID    string
	DryRun   bool
}

// DefaultConfig returns the default configuration for the given home directory.
func DefaultConfig(home string) Config {
	return Config{
		Root:        filepath.Join(home, scan.DefaultFolderName),
		Home:        home,
		FolderName:  scan.DefaultFolderName,
		Extension:   scan.DefaultExtension,
		HoldingName: DefaultHoldingName,
	}
}

// Pipeline orchestrates one run from scan to summary.
type Pipeline struct {
	classifier Classifier
	prompter   Prompter
	history    service.HistoryStore
	relocator  *relocate.Relocator
	cleanup    *cleanup.Manager
	logger     *slog.Logger
	now        func() time.Time
	config     Config
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithHistory records completed runs in store.
func WithHistory(store service.HistoryStore) Option {
	return func(p *Pipeline) {
		p.history = store
	}
}

// WithLogger sets the logger used by the pipeline and its default stages.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRelocator replaces the default relocator.
func WithRelocator(r *relocate.Relocator) Option {
	return func(p *Pipeline) {
		p.relocator = r
	}
}

// WithCleanupManager replaces the default cleanup manager.
func WithCleanupManager(m *cleanup.Manager) Option {
	return func(p *Pipeline) {
		p.cleanup = m
	}
}

// New creates a pipeline with the given dependencies.
func New(config Config, classifier Classifier, prompter Prompter, opts ...Option) *Pipeline {
	if config.FolderName == "" {
		config.FolderName = scan.DefaultFolderName
	}
	if config.Extension == "" {
		config.Extension = scan.DefaultExtension
	}
	if config.HoldingName == "" {
		config.HoldingName = DefaultHoldingName
	}

	p := &Pipeline{
		config:     config,
		classifier: classifier,
		prompter:   prompter,
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.relocator == nil {
		p.relocator = relocate.New(p.logger)
	}
	if p.cleanup == nil {
		p.cleanup = cleanup.NewManager(p.logger)
	}
	return p
}

// Run executes the pipeline once. Early stops are reported through the returned
// status with no filesystem changes. Only an invalid root, a failure to scan or
// create the holding folder, and failed prompts are returned as errors.
func (p *Pipeline) Run(ctx context.Context) (model.RunResult, error) {
	started := p.now()
	cfg := p.config

	p.prompter.ShowBanner(cfg.Root)

	if err := scan.ValidateRoot(cfg.Root, cfg.Home, cfg.FolderName); err != nil {
		return model.RunResult{}, err
	}
	root, err := scan.ResolveRoot(cfg.Root)
	if err != nil {
		return model.RunResult{}, err
	}
	holding := filepath.Join(root, cfg.HoldingName)
	kind := strings.ToUpper(strings.TrimPrefix(scan.NormalizeExtension(cfg.Extension), "."))

	p.prompter.ShowInfo(fmt.Sprintf("Scanning for %s files...", kind))
	files, err := scan.ListFiles(root, cfg.Extension)
	if err != nil {
		return model.RunResult{}, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	p.prompter.ShowInfo(fmt.Sprintf("Found %d %s file(s)", len(files), kind))
	p.logger.Debug("scan complete", "root", root, "candidates", len(files))

	if len(files) == 0 {
		p.prompter.ShowInfo(fmt.Sprintf("No %s files found. Nothing to organize.", kind))
		return model.RunResult{Status: model.StatusNoCandidates}, nil
	}

	p.prompter.ShowInfo(fmt.Sprintf("Classifying filenames (using %s)...", providerLabel(cfg.Provider)))
	classified := p.classifier.Classify(ctx, files)
	for _, warning := range classified.Warnings {
		p.prompter.ShowWarning(warning)
	}
	if err := ctx.Err(); err != nil {
		return model.RunResult{}, err
	}
	if classified.Err != nil {
		p.logger.Warn("classification degraded to no matches", "run_id", cfg.RunID, "error", classified.Err)
	}

	if classified.Empty() {
		p.prompter.ShowInfo("No school-related files found. Nothing to move.")
		return model.RunResult{Status: model.StatusNoMatches}, nil
	}
	p.prompter.ShowInfo(fmt.Sprintf("Identified %d school-related file(s)", len(classified.Files)))

	decision, err := p.prompter.ReviewSelection(ctx, classified.Files)
	if err != nil {
		return model.RunResult{}, fmt.Errorf("failed to review selection: %w", err)
	}
	if decision.Notice != "" {
		if decision.Cancelled() {
			p.prompter.ShowWarning(decision.Notice)
		} else {
			p.prompter.ShowInfo(decision.Notice)
		}
	}
	if decision.Cancelled() {
		p.logger.Info("run cancelled at review")
		return model.RunResult{Status: model.StatusCancelled}, nil
	}
	if len(decision.Files) == 0 {
		p.prompter.ShowInfo("No files selected. Nothing to move.")
		return model.RunResult{Status: model.StatusNothingSelected}, nil
	}

	if cfg.DryRun {
		p.prompter.ShowInfo(fmt.Sprintf("Dry run: %d file(s) would be moved to %s", len(decision.Files), holding))
		for _, name := range decision.Files {
			p.prompter.ShowInfo("  - " + name)
		}
		return model.RunResult{Status: model.StatusDryRun, Selected: decision.Files}, nil
	}

	if err := relocate.EnsureHoldingFolder(holding); err != nil {
		return model.RunResult{Selected: decision.Files}, err
	}

	p.prompter.ShowInfo("Moving files...")
	p.relocator.OnFile = p.prompter.MoveProgress(len(decision.Files))
	outcome := p.relocator.Move(ctx, decision.Files, root, holding)
	p.prompter.ShowMoveResult(outcome)

	partial := model.RunResult{Outcome: &outcome, Selected: decision.Files}
	if err := ctx.Err(); err != nil {
		// Never reach the destructive step on an interrupted run.
		return partial, err
	}

	answer, err := p.prompter.ConfirmCleanup(ctx, cfg.HoldingName)
	if err != nil {
		return partial, fmt.Errorf("failed to read cleanup answer: %w", err)
	}

	cleaned := p.cleanup.Run(answer, holding)
	switch {
	case cleaned.Err != nil:
		p.prompter.ShowWarning(cleaned.Notice)
	case cleaned.Action == model.ActionDeleted && cleaned.FolderExisted:
		p.prompter.ShowSuccess(cleaned.Notice)
	default:
		p.prompter.ShowInfo(cleaned.Notice)
	}

	summary := report.Build(outcome, cleaned, holding)
	if err := p.prompter.ShowSummary(summary); err != nil {
		return partial, err
	}

	p.record(ctx, started, root, len(classified.Files), outcome, summary)

	return model.RunResult{
		Summary:  &summary,
		Outcome:  &outcome,
		Status:   model.StatusCompleted,
		Selected: decision.Files,
	}, nil
}

// record saves a completed run. History is best effort and never fails the run.
func (p *Pipeline) record(ctx context.Context, started time.Time, root string, classified int, outcome model.MoveOutcome, summary model.RunSummary) {
	if p.history == nil {
		return
	}

	rec := model.RunRecord{
		ID:         p.config.RunID,
		StartedAt:  started,
		Duration:   p.now().Sub(started),
		Provider:   p.config.Provider,
		ScanRoot:   root,
		Classified: classified,
		Errors:     outcome.Errors,
		Summary:    summary,
	}
	if err := p.history.SaveRun(ctx, rec); err != nil {
		p.logger.Warn("failed to save run history", "run_id", rec.ID, "error", err)
		p.prompter.ShowWarning(fmt.Sprintf("Could not save run history: %v", err))
	}
}

func providerLabel(provider string) string {
	if provider == "" {
		return "LLM"
	}
	return provider
}
