package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	outadapter "tasktimer/internal/modules/timer/adapter/out"
	"tasktimer/internal/modules/timer/domain"
	timerout "tasktimer/internal/modules/timer/port/out"
	apperrors "tasktimer/internal/platform/errors"
)

func exerciseStore(t *testing.T, store timerout.KeyValueStore) {
	t.Helper()
	ctx := context.Background()
	if _, err := store.Get(ctx, domain.HistoryKey); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Set(ctx, domain.HistoryKey, []byte(`[{"name":"a"}]`)); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := store.Set(ctx, domain.HistoryKey, []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := store.Get(ctx, domain.HistoryKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "[]" {
		t.Fatalf("expected overwritten value, got %q", got)
	}
}

func TestFileKeyValueStore(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "data")
	exerciseStore(t, outadapter.NewFileKeyValueStore(dir))

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "taskhistory.json" {
		t.Fatalf("expected only the value file to remain, got %v", entries)
	}
}

func TestSQLiteKeyValueStore(t *testing.T) {
	t.Parallel()
	store, err := outadapter.NewSQLiteKeyValueStore(filepath.Join(t.TempDir(), "db", "tasktimer.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	exerciseStore(t, store)
}
