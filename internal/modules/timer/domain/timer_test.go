package domain_test

import (
	"errors"
	"testing"
	"time"

	"tasktimer/internal/modules/timer/domain"
	apperrors "tasktimer/internal/platform/errors"
)

var base = time.Date(2026, 10, 18, 9, 0, 0, 0, time.Local)

func at(seconds int) time.Time {
	return base.Add(time.Duration(seconds) * time.Second)
}

// tickN feeds n ticks starting after the given second offset and returns the
// offset reached plus whether the last tick completed the session.
func tickN(t *testing.T, timer *domain.Timer, from, n int) (int, bool) {
	t.Helper()
	done := false
	for i := 1; i <= n; i++ {
		var err error
		done, err = timer.Tick(at(from + i))
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if done && i != n {
			t.Fatalf("completed early at tick %d", i)
		}
	}
	return from + n, done
}

func TestFullCountdownCompletesExactlyAtZero(t *testing.T) {
	t.Parallel()
	timer := domain.NewTimer()
	if err := timer.Start("Write report", "", at(0)); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, done := tickN(t, timer, 0, domain.SessionSeconds-1); done {
		t.Fatalf("completed before reaching zero")
	}
	if timer.TimeLeft() != 1 || timer.Phase() != domain.PhaseRunning {
		t.Fatalf("expected 1s left while running, got %d %s", timer.TimeLeft(), timer.Phase())
	}
	done, err := timer.Tick(at(domain.SessionSeconds))
	if err != nil || !done {
		t.Fatalf("expected completion on last tick, done=%t err=%v", done, err)
	}
	if timer.Phase() != domain.PhaseCompleted || timer.TimeLeft() != 0 {
		t.Fatalf("expected completed at 0, got %s %d", timer.Phase(), timer.TimeLeft())
	}
	task, ok := timer.Task()
	if !ok {
		t.Fatalf("task should still be active after completion")
	}
	if len(task.Sessions) != 1 || task.TotalTime != 900 {
		t.Fatalf("expected one session and 900s, got %+v", task)
	}
	s := task.Sessions[0]
	if !s.Completed || s.Duration != 900 {
		t.Fatalf("expected completed 900s session, got %+v", s)
	}
	if !s.StartTime.Equal(at(0)) || !s.EndTime.Equal(at(900)) {
		t.Fatalf("unexpected session bounds %s - %s", s.StartTime, s.EndTime)
	}
	if _, err := timer.Tick(at(901)); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("tick after completion must be rejected, got %v", err)
	}
}

func TestStartRejectsBlankName(t *testing.T) {
	t.Parallel()
	timer := domain.NewTimer()
	err := timer.Start("   ", "notes", at(0))
	if !errors.Is(err, apperrors.ErrEmptyTaskName) || !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected empty name error, got %v", err)
	}
	if timer.Phase() != domain.PhaseIdle || timer.TimeLeft() != domain.SessionSeconds {
		t.Fatalf("state must be unchanged, got %s %d", timer.Phase(), timer.TimeLeft())
	}
	if _, ok := timer.Task(); ok {
		t.Fatalf("no task should be created")
	}
}

func TestStartTrimsNameAndNotes(t *testing.T) {
	t.Parallel()
	timer := domain.NewTimer()
	if err := timer.Start("  Deep work ", "  focus  ", at(0)); err != nil {
		t.Fatalf("start: %v", err)
	}
	task, _ := timer.Task()
	if task.Name != "Deep work" || task.Notes != "focus" {
		t.Fatalf("expected trimmed fields, got %q %q", task.Name, task.Notes)
	}
	if !task.StartTime.Equal(at(0)) || task.TotalTime != 0 || len(task.Sessions) != 0 {
		t.Fatalf("unexpected fresh task %+v", task)
	}
}

func TestPauseResumeStopRecordsIncompleteSession(t *testing.T) {
	t.Parallel()
	timer := domain.NewTimer()
	if err := timer.Start("A", "", at(0)); err != nil {
		t.Fatalf("start: %v", err)
	}
	now, _ := tickN(t, timer, 0, 50)
	if err := timer.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if timer.TimeLeft() != 850 || !timer.IsPaused() {
		t.Fatalf("expected paused at 850, got %d", timer.TimeLeft())
	}
	if _, err := timer.Tick(at(now + 1)); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("paused timer must not tick, got %v", err)
	}
	now += 30
	if err := timer.Resume(at(now)); err != nil {
		t.Fatalf("resume: %v", err)
	}
	now, _ = tickN(t, timer, now, 50)
	task, err := timer.Stop(at(now))
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if len(task.Sessions) != 1 || task.TotalTime != 100 {
		t.Fatalf("expected one 100s session, got %+v", task)
	}
	s := task.Sessions[0]
	if s.Completed || s.Duration != 100 {
		t.Fatalf("expected incomplete 100s session, got %+v", s)
	}
	if !s.EndTime.Equal(at(now)) || !s.StartTime.Equal(at(now-100)) {
		t.Fatalf("unexpected bounds %s - %s", s.StartTime, s.EndTime)
	}
	if !task.Persistable() {
		t.Fatalf("100s task must be persistable")
	}
	if timer.Phase() != domain.PhaseIdle || timer.TimeLeft() != domain.SessionSeconds {
		t.Fatalf("expected idle reset, got %s %d", timer.Phase(), timer.TimeLeft())
	}
}

func TestImmediateStopYieldsZeroTimeTask(t *testing.T) {
	t.Parallel()
	timer := domain.NewTimer()
	if err := timer.Start("B", "", at(0)); err != nil {
		t.Fatalf("start: %v", err)
	}
	task, err := timer.Stop(at(0))
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if task.TotalTime != 0 || task.Persistable() {
		t.Fatalf("zero-time task must not be persistable: %+v", task)
	}
}

func TestContinueAccumulatesUnderSameTask(t *testing.T) {
	t.Parallel()
	timer := domain.NewTimer()
	if err := timer.Start("C", "", at(0)); err != nil {
		t.Fatalf("start: %v", err)
	}
	now, done := tickN(t, timer, 0, domain.SessionSeconds)
	if !done {
		t.Fatalf("expected completion")
	}
	if err := timer.Continue(at(now)); err != nil {
		t.Fatalf("continue: %v", err)
	}
	if timer.TimeLeft() != domain.SessionSeconds || timer.Phase() != domain.PhaseRunning {
		t.Fatalf("continue must reset countdown, got %d %s", timer.TimeLeft(), timer.Phase())
	}
	now, _ = tickN(t, timer, now, 200)
	task, err := timer.Stop(at(now))
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if len(task.Sessions) != 2 || task.TotalTime != 1100 {
		t.Fatalf("expected two sessions totalling 1100, got %+v", task)
	}
	if !task.Sessions[0].Completed || task.Sessions[0].Duration != 900 {
		t.Fatalf("first session should be the completed one: %+v", task.Sessions[0])
	}
	if task.Sessions[1].Completed || task.Sessions[1].Duration != 200 {
		t.Fatalf("second session should be incomplete 200s: %+v", task.Sessions[1])
	}
	if task.CompletedSessions() != 1 {
		t.Fatalf("expected 1 completed session, got %d", task.CompletedSessions())
	}
}

func TestNextClosesCompletedTask(t *testing.T) {
	t.Parallel()
	timer := domain.NewTimer()
	if err := timer.Start("D", "n", at(0)); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := timer.Next(); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("next while running must fail, got %v", err)
	}
	tickN(t, timer, 0, domain.SessionSeconds)
	if _, err := timer.Stop(at(900)); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("stop while completed must fail, got %v", err)
	}
	task, err := timer.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if task.TotalTime != 900 || len(task.Sessions) != 1 {
		t.Fatalf("unexpected task %+v", task)
	}
	if timer.Phase() != domain.PhaseIdle {
		t.Fatalf("expected idle after next, got %s", timer.Phase())
	}
}

func TestInvalidTransitionsLeaveStateUntouched(t *testing.T) {
	t.Parallel()
	timer := domain.NewTimer()
	checks := []struct {
		name string
		run  func() error
	}{
		{"pause while idle", timer.Pause},
		{"resume while idle", func() error { return timer.Resume(at(0)) }},
		{"continue while idle", func() error { return timer.Continue(at(0)) }},
		{"stop while idle", func() error { _, err := timer.Stop(at(0)); return err }},
		{"tick while idle", func() error { _, err := timer.Tick(at(0)); return err }},
	}
	for _, c := range checks {
		if err := c.run(); !errors.Is(err, apperrors.ErrInvalidTransition) {
			t.Fatalf("%s: expected invalid transition, got %v", c.name, err)
		}
		if timer.Phase() != domain.PhaseIdle {
			t.Fatalf("%s: phase changed to %s", c.name, timer.Phase())
		}
	}
	if err := timer.Start("E", "", at(0)); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := timer.Start("F", "", at(1)); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("second start must fail, got %v", err)
	}
	if err := timer.Resume(at(1)); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("resume while running must fail, got %v", err)
	}
}

// The end time shown for a segment is computed when the segment (re)starts
// and is deliberately not refreshed while it runs.
func TestWindowRecomputedOnlyAtSegmentBoundaries(t *testing.T) {
	t.Parallel()
	timer := domain.NewTimer()
	if err := timer.Start("G", "", at(0)); err != nil {
		t.Fatalf("start: %v", err)
	}
	w := timer.Window()
	if !w.Start.Equal(at(0)) || !w.End.Equal(at(900)) {
		t.Fatalf("unexpected initial window %+v", w)
	}
	tickN(t, timer, 0, 100)
	if timer.Window() != w {
		t.Fatalf("window must not move while running")
	}
	if err := timer.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if err := timer.Resume(at(400)); err != nil {
		t.Fatalf("resume: %v", err)
	}
	w = timer.Window()
	if !w.Start.Equal(at(400)) || !w.End.Equal(at(400+800)) {
		t.Fatalf("resume should recompute window from remaining time, got %+v", w)
	}
}

func TestTaskCopiesDoNotAlias(t *testing.T) {
	t.Parallel()
	timer := domain.NewTimer()
	if err := timer.Start("H", "", at(0)); err != nil {
		t.Fatalf("start: %v", err)
	}
	tickN(t, timer, 0, domain.SessionSeconds)
	task, _ := timer.Task()
	task.Sessions[0].Duration = 1
	again, _ := timer.Task()
	if again.Sessions[0].Duration != 900 {
		t.Fatalf("mutating a snapshot leaked into the active task")
	}
}
