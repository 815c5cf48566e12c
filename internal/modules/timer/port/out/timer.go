package out

import (
	"context"
	"time"

	"tasktimer/internal/modules/timer/domain"
)

// KeyValueStore persists opaque payloads under string keys. Set replaces the
// whole value in one step. Get returns apperrors.ErrNotFound for unknown keys.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Notifier delivers a one-shot user notification. It returns
// apperrors.ErrUnavailable when notifications are not permitted.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// CuePlayer plays a short audible cue.
type CuePlayer interface {
	Play(ctx context.Context) error
}

type HistoryStats struct {
	Tasks             int
	Sessions          int
	CompletedSessions int
	TotalSeconds      int
	TodaySeconds      int
}

// HistoryProjector maintains a queryable copy of the history.
type HistoryProjector interface {
	Rebuild(ctx context.Context, history []domain.Task) error
	// Stats counts today relative to now's calendar day and location.
	Stats(ctx context.Context, now time.Time) (HistoryStats, error)
}

type ExportFormat string

const (
	ExportJSON     ExportFormat = "json"
	ExportYAML     ExportFormat = "yaml"
	ExportMarkdown ExportFormat = "markdown"
)

// HistoryExporter writes history to path in the given format and returns the
// files it produced.
type HistoryExporter interface {
	Export(ctx context.Context, format ExportFormat, path string, history []domain.Task) ([]string, error)
}
