package domain

import (
	"strings"
	"time"
)

// SessionSeconds is the fixed length of one countdown.
const SessionSeconds = 15 * 60

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseRunning   Phase = "running"
	PhasePaused    Phase = "paused"
	PhaseCompleted Phase = "completed"
)

type Session struct {
	StartTime time.Time `json:"startTime" yaml:"startTime"`
	EndTime   time.Time `json:"endTime" yaml:"endTime"`
	Duration  int       `json:"duration" yaml:"duration"`
	Completed bool      `json:"completed" yaml:"completed"`
}

type Task struct {
	Name      string    `json:"name" yaml:"name"`
	Notes     string    `json:"notes" yaml:"notes"`
	StartTime time.Time `json:"startTime" yaml:"startTime"`
	EndTime   time.Time `json:"endTime" yaml:"endTime"`
	TotalTime int       `json:"totalTime" yaml:"totalTime"`
	Sessions  []Session `json:"sessions" yaml:"sessions"`
}

func NewTask(name, notes string, now time.Time) Task {
	return Task{
		Name:      strings.TrimSpace(name),
		Notes:     strings.TrimSpace(notes),
		StartTime: now,
		Sessions:  []Session{},
	}
}

// Persistable reports whether the task accumulated any time. Tasks with zero
// total time are discarded instead of saved.
func (t Task) Persistable() bool {
	return t.TotalTime > 0
}

func (t Task) CompletedSessions() int {
	n := 0
	for _, s := range t.Sessions {
		if s.Completed {
			n++
		}
	}
	return n
}

// Clone returns a copy that shares no session storage with t.
func (t Task) Clone() Task {
	out := t
	out.Sessions = make([]Session, len(t.Sessions))
	copy(out.Sessions, t.Sessions)
	return out
}

func (t *Task) record(s Session) {
	t.Sessions = append(t.Sessions, s)
	t.TotalTime += s.Duration
}

func secondsBefore(now time.Time, seconds int) time.Time {
	return now.Add(-time.Duration(seconds) * time.Second)
}
