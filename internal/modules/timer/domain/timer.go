package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "tasktimer/internal/platform/errors"
)

// Window is the wall-clock start/end shown for the current running segment.
// It is only recomputed when a segment starts, resumes or continues, so it
// drifts from the true end while the countdown is paused and resumed.
type Window struct {
	Start time.Time
	End   time.Time
}

// Timer is the countdown state machine. It holds no scheduling state; callers
// feed it one Tick per elapsed second while it is running.
type Timer struct {
	phase    Phase
	timeLeft int
	task     *Task
	window   Window
}

func NewTimer() *Timer {
	return &Timer{phase: PhaseIdle, timeLeft: SessionSeconds}
}

func (t *Timer) Phase() Phase   { return t.phase }
func (t *Timer) TimeLeft() int  { return t.timeLeft }
func (t *Timer) Window() Window { return t.window }

// IsRunning mirrors the countdown flag: true from start until stop or next.
func (t *Timer) IsRunning() bool {
	return t.phase == PhaseRunning || t.phase == PhasePaused || t.phase == PhaseCompleted
}

func (t *Timer) IsPaused() bool { return t.phase == PhasePaused }

// Task returns a copy of the active task.
func (t *Timer) Task() (Task, bool) {
	if t.task == nil {
		return Task{}, false
	}
	return t.task.Clone(), true
}

func (t *Timer) Start(name, notes string, now time.Time) error {
	if t.phase != PhaseIdle {
		return invalid("start", t.phase)
	}
	if strings.TrimSpace(name) == "" {
		return apperrors.ErrEmptyTaskName
	}
	task := NewTask(name, notes, now)
	t.task = &task
	t.timeLeft = SessionSeconds
	t.enterRunning(now)
	return nil
}

// Tick consumes one elapsed second and reports whether the session completed.
func (t *Timer) Tick(now time.Time) (bool, error) {
	if t.phase != PhaseRunning {
		return false, invalid("tick", t.phase)
	}
	t.timeLeft--
	if t.timeLeft > 0 {
		return false, nil
	}
	t.timeLeft = 0
	t.task.record(Session{
		StartTime: secondsBefore(now, SessionSeconds),
		EndTime:   now,
		Duration:  SessionSeconds,
		Completed: true,
	})
	t.phase = PhaseCompleted
	return true, nil
}

func (t *Timer) Pause() error {
	if t.phase != PhaseRunning {
		return invalid("pause", t.phase)
	}
	t.phase = PhasePaused
	return nil
}

func (t *Timer) Resume(now time.Time) error {
	if t.phase != PhasePaused {
		return invalid("resume", t.phase)
	}
	t.enterRunning(now)
	return nil
}

// Stop cuts the current segment short, records it as an incomplete session
// and returns the finished task. The timer is back in Idle afterwards.
func (t *Timer) Stop(now time.Time) (Task, error) {
	if t.phase != PhaseRunning && t.phase != PhasePaused {
		return Task{}, invalid("stop", t.phase)
	}
	elapsed := SessionSeconds - t.timeLeft
	t.task.record(Session{
		StartTime: secondsBefore(now, elapsed),
		EndTime:   now,
		Duration:  elapsed,
		Completed: false,
	})
	return t.finish(), nil
}

func (t *Timer) Continue(now time.Time) error {
	if t.phase != PhaseCompleted {
		return invalid("continue", t.phase)
	}
	t.timeLeft = SessionSeconds
	t.enterRunning(now)
	return nil
}

// Next closes a completed task and returns it. The timer is back in Idle.
func (t *Timer) Next() (Task, error) {
	if t.phase != PhaseCompleted {
		return Task{}, invalid("next", t.phase)
	}
	return t.finish(), nil
}

func (t *Timer) enterRunning(now time.Time) {
	t.phase = PhaseRunning
	t.window = Window{
		Start: now,
		End:   now.Add(time.Duration(t.timeLeft) * time.Second),
	}
}

func (t *Timer) finish() Task {
	task := t.task.Clone()
	t.task = nil
	t.phase = PhaseIdle
	t.timeLeft = SessionSeconds
	t.window = Window{}
	return task
}

func invalid(op string, phase Phase) error {
	return fmt.Errorf("%w: %s while %s", apperrors.ErrInvalidTransition, op, phase)
}
