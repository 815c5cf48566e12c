package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tasktimer/internal/modules/timer/domain"
	timerout "tasktimer/internal/modules/timer/port/out"
)

// SQLiteHistoryProjector mirrors the JSON history into tables for stats.
// The JSON entry stays the source of truth; Rebuild replaces everything.
type SQLiteHistoryProjector struct {
	db *sql.DB
}

func NewSQLiteHistoryProjector(dbPath string) (*SQLiteHistoryProjector, error) {
	db, err := openSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	projector := &SQLiteHistoryProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

var _ timerout.HistoryProjector = (*SQLiteHistoryProjector)(nil)

func (p *SQLiteHistoryProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS history_tasks (
  position INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  notes TEXT NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT NOT NULL,
  total_time INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS history_sessions (
  task_position INTEGER NOT NULL,
  idx INTEGER NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT NOT NULL,
  duration INTEGER NOT NULL,
  completed INTEGER NOT NULL,
  PRIMARY KEY (task_position, idx)
);
CREATE INDEX IF NOT EXISTS history_sessions_end ON history_sessions(end_time);
`
	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create history tables: %w", err)
	}
	return nil
}

func (p *SQLiteHistoryProjector) Rebuild(ctx context.Context, history []domain.Task) (err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rebuild: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM history_sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM history_tasks`); err != nil {
		return fmt.Errorf("reset tasks: %w", err)
	}
	for pos, task := range history {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO history_tasks (position, name, notes, start_time, end_time, total_time) VALUES (?, ?, ?, ?, ?, ?)`,
			pos, task.Name, task.Notes, formatSQLiteTime(task.StartTime), formatSQLiteTime(task.EndTime), task.TotalTime,
		)
		if err != nil {
			return fmt.Errorf("insert task %d: %w", pos, err)
		}
		for idx, session := range task.Sessions {
			completed := 0
			if session.Completed {
				completed = 1
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO history_sessions (task_position, idx, start_time, end_time, duration, completed) VALUES (?, ?, ?, ?, ?, ?)`,
				pos, idx, formatSQLiteTime(session.StartTime), formatSQLiteTime(session.EndTime), session.Duration, completed,
			)
			if err != nil {
				return fmt.Errorf("insert session %d/%d: %w", pos, idx, err)
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit rebuild: %w", err)
	}
	return nil
}

// Stats counts today's seconds from sessions that ended on now's calendar
// day in now's location.
func (p *SQLiteHistoryProjector) Stats(ctx context.Context, now time.Time) (timerout.HistoryStats, error) {
	stats := timerout.HistoryStats{}
	err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total_time), 0) FROM history_tasks`,
	).Scan(&stats.Tasks, &stats.TotalSeconds)
	if err != nil {
		return timerout.HistoryStats{}, fmt.Errorf("count tasks: %w", err)
	}
	err = p.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(completed), 0) FROM history_sessions`,
	).Scan(&stats.Sessions, &stats.CompletedSessions)
	if err != nil {
		return timerout.HistoryStats{}, fmt.Errorf("count sessions: %w", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	err = p.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(duration), 0) FROM history_sessions WHERE end_time >= ? AND end_time < ?`,
		formatSQLiteTime(dayStart), formatSQLiteTime(dayEnd),
	).Scan(&stats.TodaySeconds)
	if err != nil {
		return timerout.HistoryStats{}, fmt.Errorf("sum today: %w", err)
	}
	return stats, nil
}

func (p *SQLiteHistoryProjector) Close() error {
	return p.db.Close()
}

func formatSQLiteTime(t time.Time) string {
	return t.UTC().Format(sqliteTime)
}
