package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/homework-heap/internal/common"
	"github.com/Veraticus/homework-heap/internal/model"
	"github.com/Veraticus/homework-heap/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistoryStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func saveRun(t *testing.T, store *storage.SQLiteStorage, id string, started time.Time, errs ...string) {
	t.Helper()

	rec := model.RunRecord{
		ID:         id,
		StartedAt:  started,
		Duration:   1500 * time.Millisecond,
		Provider:   "rules",
		ScanRoot:   "/home/student/Downloads",
		Classified: 3,
		Errors:     errs,
		Summary: model.RunSummary{
			FilesMoved:   []string{"Essay1.pdf", "LectureNotes.pdf"},
			TotalCount:   2,
			ActionTaken:  model.ActionKept,
			TargetFolder: "Old Schoolwork",
		},
	}
	require.NoError(t, store.SaveRun(context.Background(), rec))
}

func TestListHistory_Empty(t *testing.T) {
	store := newHistoryStore(t)
	var out bytes.Buffer

	require.NoError(t, listHistory(context.Background(), store, 20, &out))
	assert.Equal(t, "No runs recorded yet.\n", out.String())
}

func TestListHistory_Table(t *testing.T) {
	store := newHistoryStore(t)
	now := time.Now()
	saveRun(t, store, "aaaaaaaa-1111-2222-3333-444444444444", now.Add(-time.Hour))
	saveRun(t, store, "bbbbbbbb-1111-2222-3333-444444444444", now, "menu.pdf: permission denied")

	tests := []struct {
		name     string
		limit    int
		contains []string
		excludes []string
	}{
		{
			name:     "all runs",
			limit:    0,
			contains: []string{"aaaaaaaa", "bbbbbbbb", "rules", "kept"},
		},
		{
			name:     "limit keeps newest",
			limit:    1,
			contains: []string{"bbbbbbbb"},
			excludes: []string{"aaaaaaaa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, listHistory(context.Background(), store, tt.limit, &out))

			got := out.String()
			assert.Contains(t, strings.ToLower(got), "provider")
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, got, s)
			}
			assert.NotContains(t, got, "-1111-", "IDs are shortened")
		})
	}
}

func TestShowRun(t *testing.T) {
	store := newHistoryStore(t)
	id := "aaaaaaaa-1111-2222-3333-444444444444"
	saveRun(t, store, id, time.Now(), "menu.pdf: permission denied")
	saveRun(t, store, "abbbbbbb-1111-2222-3333-444444444444", time.Now().Add(-time.Minute))

	tests := []struct {
		name    string
		id      string
		wantErr error
		errText string
	}{
		{name: "full id", id: id},
		{name: "unique prefix", id: "aaaa"},
		{name: "ambiguous prefix", id: "a", errText: "ambiguous"},
		{name: "unknown", id: "zzzz", wantErr: common.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := showRun(context.Background(), store, tt.id, &out)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				require.NoError(t, err)
				got := out.String()
				assert.Contains(t, got, "Run:        "+id)
				assert.Contains(t, got, "Classified: 3")
				assert.Contains(t, got, "Errors (1):\n  - menu.pdf: permission denied")
				assert.Contains(t, got, `"files_moved": [`)
				assert.Contains(t, got, `"action_taken": "kept"`)
			}
		})
	}
}

func TestRenderTable(t *testing.T) {
	assert.Empty(t, renderTable(nil, nil, nil))

	got := renderTable(
		[]string{"Name", "Count"},
		[][]string{{"alpha", "1"}, {"beta"}},
		[]columnAlignment{alignLeft, alignRight},
	)
	assert.Contains(t, got, "alpha")
	assert.Contains(t, got, "beta")
	assert.Contains(t, strings.ToLower(got), "count")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "12345678", shortID("1234567890"))
}

func TestVersionCmd(t *testing.T) {
	cmd := versionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "homeworkheap version dev\n", out.String())
}
