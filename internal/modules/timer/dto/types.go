package dto

import "time"

type StartInput struct {
	Name  string
	Notes string
}

type SessionOutput struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  int
	Completed bool
}

type TaskOutput struct {
	Name              string
	Notes             string
	StartTime         time.Time
	EndTime           time.Time
	TotalTime         int
	CompletedSessions int
	Sessions          []SessionOutput
}

// SnapshotOutput is everything an adapter needs to render the timer.
type SnapshotOutput struct {
	Phase     string
	TimeLeft  int
	Remaining string
	IsRunning bool
	IsPaused  bool
	HasTask   bool
	Task      TaskOutput
	// WindowStart and WindowEnd bound the current running segment. They are
	// zero while idle.
	WindowStart time.Time
	WindowEnd   time.Time
	StartLabel  string
	EndLabel    string
}

type FinishOutput struct {
	Task  TaskOutput
	Saved bool
}

type HistoryInput struct {
	Limit int
}

type StatsOutput struct {
	Tasks             int
	Sessions          int
	CompletedSessions int
	TotalSeconds      int
	TodaySeconds      int
	Total             string
	Today             string
}

type ExportInput struct {
	Format string
	Path   string
}

type ExportOutput struct {
	Format string
	Tasks  int
	Files  []string
}
