package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/homework-heap/internal/common"
	"github.com/Veraticus/homework-heap/internal/model"
	"github.com/Veraticus/homework-heap/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ service.HistoryStore = (*SQLiteStorage)(nil)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRecord(id string, started time.Time, moved ...string) model.RunRecord {
	if moved == nil {
		moved = []string{}
	}
	return model.RunRecord{
		ID:         id,
		StartedAt:  started,
		Duration:   1500 * time.Millisecond,
		Provider:   "openai",
		ScanRoot:   "/home/u/Downloads",
		Classified: len(moved) + 1,
		Summary: model.RunSummary{
			FilesMoved:   moved,
			TotalCount:   len(moved),
			ActionTaken:  model.ActionKept,
			TargetFolder: "/home/u/Downloads/Old Schoolwork",
		},
	}
}

func TestSQLiteStorage_SaveAndGetRun(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	rec := testRecord("run-1", started, "Essay1.pdf", "Notes.pdf")
	rec.Errors = []string{"Ghost.pdf: File not found"}
	require.NoError(t, store.SaveRun(ctx, rec))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, "run-1", got.ID)
	assert.True(t, started.Equal(got.StartedAt), "started_at round trip: %v", got.StartedAt)
	assert.Equal(t, 1500*time.Millisecond, got.Duration)
	assert.Equal(t, "openai", got.Provider)
	assert.Equal(t, rec.ScanRoot, got.ScanRoot)
	assert.Equal(t, 3, got.Classified)
	assert.Equal(t, rec.Summary, got.Summary)
	assert.Equal(t, rec.Errors, got.Errors)
}

func TestSQLiteStorage_SaveRunAssignsID(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRun(ctx, testRecord("", time.Now())))

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Len(t, runs[0].ID, 36)
	assert.Empty(t, runs[0].Summary.FilesMoved)
	assert.NotNil(t, runs[0].Summary.FilesMoved)
}

func TestSQLiteStorage_SaveRunRejectsDuplicates(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRun(ctx, testRecord("dup", time.Now(), "a.pdf")))
	err := store.SaveRun(ctx, testRecord("dup", time.Now(), "b.pdf"))
	require.Error(t, err)

	got, err := store.GetRun(ctx, "dup")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf"}, got.Summary.FilesMoved, "failed save must not leave partial rows")
}

func TestSQLiteStorage_SaveRunValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*model.RunRecord)
	}{
		{name: "zero start time", mutate: func(r *model.RunRecord) { r.StartedAt = time.Time{} }},
		{name: "missing target folder", mutate: func(r *model.RunRecord) { r.Summary.TargetFolder = " " }},
		{name: "unknown action", mutate: func(r *model.RunRecord) { r.Summary.ActionTaken = "archived" }},
		{name: "count mismatch", mutate: func(r *model.RunRecord) { r.Summary.TotalCount = 5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecord("bad", time.Now(), "a.pdf")
			tt.mutate(&rec)
			err := store.SaveRun(ctx, rec)
			assert.ErrorIs(t, err, ErrInvalidRunRecord)
		})
	}
}

func TestSQLiteStorage_ListRuns(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		rec := testRecord(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Hour), fmt.Sprintf("file%d.pdf", i))
		require.NoError(t, store.SaveRun(ctx, rec))
	}

	all, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "run-4", all[0].ID, "newest first")
	assert.Equal(t, "run-0", all[4].ID)
	assert.Equal(t, []string{"file4.pdf"}, all[0].Summary.FilesMoved)

	limited, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "run-4", limited[0].ID)
	assert.Equal(t, "run-3", limited[1].ID)
}

func TestSQLiteStorage_ListRunsEmpty(t *testing.T) {
	store := createTestStorage(t)

	runs, err := store.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSQLiteStorage_GetRunErrors(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.GetRun(ctx, "  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestSQLiteStorage_Migrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")
	ctx := context.Background()

	store1, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store1.Migrate(ctx))
	require.NoError(t, store1.SaveRun(ctx, testRecord("persisted", time.Now(), "a.pdf")))
	require.NoError(t, store1.Close())

	// Re-running migrations is a no-op and keeps data.
	store2, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = store2.Close() }()
	require.NoError(t, store2.Migrate(ctx))

	version, err := store2.schemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	got, err := store2.GetRun(ctx, "persisted")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf"}, got.Summary.FilesMoved)
}

func TestSQLiteStorage_RejectsNewerSchema(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", ExpectedSchemaVersion+1))
	require.NoError(t, err)

	err = store.Migrate(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than supported")
}

func TestSQLiteStorage_InMemory(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, store.SaveRun(context.Background(), testRecord("mem", time.Now())))
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.ErrorIs(t, err, ErrEmptyString)
}
