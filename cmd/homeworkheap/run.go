package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/homework-heap/internal/cli"
	"github.com/Veraticus/homework-heap/internal/common"
	"github.com/Veraticus/homework-heap/internal/config"
	"github.com/Veraticus/homework-heap/internal/engine"
	"github.com/Veraticus/homework-heap/internal/model"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Find, review, and move school PDFs out of ~/Downloads",
		Long: `Scan ~/Downloads for PDF files, classify their names, and let you review the
list once before anything moves. Approved files go to "Old Schoolwork" inside
Downloads. The folder is deleted only if you answer "yes" at the end.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dryRun, err := cmd.Flags().GetBool("dry-run")
			if err != nil {
				return err
			}

			settings, err := config.Load(viper.GetViper())
			if err != nil {
				return common.NewUserError("invalid configuration", err)
			}

			_, err = executeRun(cmd.Context(), settings, dryRun, cmd.InOrStdin(), cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().Bool("dry-run", false, "review the selection without moving or deleting anything")
	cmd.Flags().String("provider", "", "classifier provider (openai, anthropic, claudecode, rules)")
	cmd.Flags().String("model", "", "model name for the selected provider")
	cmd.Flags().String("extension", "", "file extension to scan for (default .pdf)")

	_ = viper.BindPFlag("llm.provider", cmd.Flags().Lookup("provider"))
	_ = viper.BindPFlag("llm.model", cmd.Flags().Lookup("model"))
	_ = viper.BindPFlag("scan.extension", cmd.Flags().Lookup("extension"))

	return cmd
}

// executeRun holds the run lock, wires the pipeline from settings, and runs it once.
func executeRun(ctx context.Context, settings config.Settings, dryRun bool, in io.Reader, out io.Writer) (model.RunResult, error) {
	unlock, err := acquireRunLock(settings.LockPath)
	if err != nil {
		return model.RunResult{}, err
	}
	defer unlock()

	classifier, err := createClassifier(settings)
	if err != nil {
		return model.RunResult{}, common.NewUserError("failed to set up classifier", err)
	}

	opts := []engine.Option{engine.WithLogger(slog.Default())}
	if settings.HistoryEnabled && !dryRun {
		store, storeErr := initStorage(ctx, settings)
		if storeErr != nil {
			common.LogError(storeErr, "run history disabled", common.Fields{"path": settings.DatabasePath})
		} else {
			defer func() { _ = store.Close() }()
			opts = append(opts, engine.WithHistory(store))
		}
	}

	prompter := cli.NewCLIPrompter(in, out, cli.WithCancelKeyword(settings.CancelKeyword))
	interrupts := cli.NewInterruptHandler(out, settings.HoldingFolder)
	ctx = interrupts.HandleInterrupts(ctx)
	defer interrupts.Stop()

	runID := uuid.NewString()
	cfg := engine.Config{
		Root:        settings.ScanRoot(),
		Home:        settings.Home,
		FolderName:  settings.ScanFolder,
		Extension:   settings.Extension,
		HoldingName: settings.HoldingFolder,
		Provider:    settings.LLM.Provider,
		RunID:       runID,
		DryRun:      dryRun,
	}

	slog.Debug("starting run", "run_id", runID, "provider", cfg.Provider, "root", cfg.Root, "dry_run", dryRun)
	result, err := engine.New(cfg, classifier, prompter, opts...).Run(ctx)
	if err != nil {
		if interrupts.WasInterrupted() {
			return result, common.NewUserError("interrupted", err)
		}
		if common.IsConfigError(err) {
			return result, common.NewUserError(err.Error(), err)
		}
		return result, err
	}

	slog.Debug("run finished", "run_id", runID, "status", result.Status)
	return result, nil
}

// acquireRunLock takes the process-wide lock so two runs never race on one Downloads folder.
func acquireRunLock(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, common.NewUserError(
			fmt.Sprintf("another homeworkheap run is already in progress (lock: %s)", path),
			common.ErrRunInProgress)
	}

	return func() {
		if err := lock.Unlock(); err != nil {
			slog.Warn("failed to release run lock", "path", path, "error", err)
		}
	}, nil
}
