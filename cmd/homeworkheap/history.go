package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/homework-heap/internal/common"
	"github.com/Veraticus/homework-heap/internal/config"
	"github.com/Veraticus/homework-heap/internal/model"
	"github.com/Veraticus/homework-heap/internal/report"
	"github.com/Veraticus/homework-heap/internal/service"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past runs",
		Long:  `List completed runs, newest first. Runs that stopped before moving anything are not recorded.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return err
			}

			store, err := openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return listHistory(cmd.Context(), store, limit, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "number of runs to show (0 for all)")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the summary of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return showRun(cmd.Context(), store, args[0], cmd.OutOrStdout())
		},
	})

	return cmd
}

// openHistory opens the history database without requiring classifier credentials.
func openHistory(ctx context.Context) (service.HistoryStore, error) {
	path, err := config.DatabasePath(viper.GetViper())
	if err != nil {
		return nil, err
	}

	store, err := initStorage(ctx, config.Settings{DatabasePath: path})
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	return store, nil
}

func listHistory(ctx context.Context, store service.HistoryStore, limit int, out io.Writer) error {
	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		_, err := fmt.Fprintln(out, "No runs recorded yet.")
		return err
	}

	headers := []string{"ID", "Started", "Provider", "Moved", "Errors", "Action", "Duration"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			shortID(r.ID),
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Provider,
			strconv.Itoa(r.Summary.TotalCount),
			strconv.Itoa(len(r.Errors)),
			string(r.Summary.ActionTaken),
			r.Duration.Round(100 * time.Millisecond).String(),
		})
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignRight}

	_, err = fmt.Fprintln(out, renderTable(headers, rows, aligns))
	return err
}

func showRun(ctx context.Context, store service.HistoryStore, id string, out io.Writer) error {
	rec, err := store.GetRun(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		rec, err = findByPrefix(ctx, store, id)
	}
	if err != nil {
		return err
	}

	lines := []string{
		fmt.Sprintf("Run:        %s", rec.ID),
		fmt.Sprintf("Started:    %s", rec.StartedAt.Local().Format(time.RFC1123)),
		fmt.Sprintf("Provider:   %s", rec.Provider),
		fmt.Sprintf("Scan root:  %s", rec.ScanRoot),
		fmt.Sprintf("Classified: %d", rec.Classified),
	}
	if _, err := fmt.Fprintln(out, strings.Join(lines, "\n")); err != nil {
		return err
	}

	if len(rec.Errors) > 0 {
		if _, err := fmt.Fprintf(out, "\nErrors (%d):\n", len(rec.Errors)); err != nil {
			return err
		}
		for _, e := range rec.Errors {
			if _, err := fmt.Fprintf(out, "  - %s\n", e); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	return report.Render(out, rec.Summary)
}

// findByPrefix resolves the short IDs printed by the history table.
func findByPrefix(ctx context.Context, store service.HistoryStore, prefix string) (*model.RunRecord, error) {
	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		return nil, err
	}

	var match *model.RunRecord
	for i := range runs {
		if !strings.HasPrefix(runs[i].ID, prefix) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("run id prefix %q is ambiguous", prefix)
		}
		match = &runs[i]
	}
	if match == nil {
		return nil, fmt.Errorf("run %s: %w", prefix, common.ErrNotFound)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
