package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"tasktimer/internal/modules/timer/domain"
	timerout "tasktimer/internal/modules/timer/port/out"
	"tasktimer/internal/platform/clock"
	apperrors "tasktimer/internal/platform/errors"
)

const tickInterval = time.Second

// Snapshot is a point-in-time copy of the timer state.
type Snapshot struct {
	Phase    domain.Phase
	TimeLeft int
	Running  bool
	Paused   bool
	Task     domain.Task
	HasTask  bool
	Window   domain.Window
}

// SessionTimer owns the countdown state machine, the pending tick handle and
// the task history. All methods are safe for concurrent use; tick callbacks
// arrive on the ticker's goroutine.
type SessionTimer struct {
	clock  clock.Clock
	ticker clock.Ticker
	store  timerout.KeyValueStore
	logger hclog.Logger

	mu         sync.Mutex
	machine    *domain.Timer
	handle     clock.Handle
	generation uint64
	history    []domain.Task
	onComplete func(domain.Task)
}

func NewSessionTimer(clk clock.Clock, ticker clock.Ticker, store timerout.KeyValueStore, logger hclog.Logger) *SessionTimer {
	return &SessionTimer{
		clock:   clk,
		ticker:  ticker,
		store:   store,
		logger:  logger,
		machine: domain.NewTimer(),
		history: []domain.Task{},
	}
}

// OnComplete registers fn to run after a session reaches zero. fn runs on the
// ticker goroutine without the timer lock held.
func (s *SessionTimer) OnComplete(fn func(domain.Task)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onComplete = fn
}

// LoadHistory replaces the in-memory history with the stored one. A missing,
// unreadable or corrupt entry yields an empty history.
func (s *SessionTimer) LoadHistory(ctx context.Context) []domain.Task {
	history := s.readHistory(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = history
	return cloneHistory(history)
}

func (s *SessionTimer) readHistory(ctx context.Context) []domain.Task {
	payload, err := s.store.Get(ctx, domain.HistoryKey)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("history unreadable, starting empty", "error", err)
		}
		return []domain.Task{}
	}
	history, err := domain.DecodeHistory(payload)
	if err != nil {
		s.logger.Warn("history corrupt, starting empty", "error", err)
		return []domain.Task{}
	}
	return history
}

func (s *SessionTimer) History() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneHistory(s.history)
}

func (s *SessionTimer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *SessionTimer) Start(name, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != nil {
		return apperrors.ErrTickerActive
	}
	if err := s.machine.Start(name, notes, s.clock.Now()); err != nil {
		return err
	}
	s.arm()
	s.logger.Debug("task started", "task", s.currentName())
	return nil
}

func (s *SessionTimer) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pauseLocked()
}

func (s *SessionTimer) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resumeLocked()
}

// TogglePause pauses a running countdown or resumes a paused one. The phase
// is read and changed under one lock, so a completing tick cannot slip in
// between.
func (s *SessionTimer) TogglePause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.machine.IsPaused() {
		return s.resumeLocked()
	}
	return s.pauseLocked()
}

func (s *SessionTimer) pauseLocked() error {
	if err := s.machine.Pause(); err != nil {
		return err
	}
	s.disarm()
	return nil
}

func (s *SessionTimer) resumeLocked() error {
	if s.handle != nil {
		return apperrors.ErrTickerActive
	}
	if err := s.machine.Resume(s.clock.Now()); err != nil {
		return err
	}
	s.arm()
	return nil
}

// Stop records the partial session, saves the task when it accumulated time,
// and returns the finished task with whether it was saved.
func (s *SessionTimer) Stop(ctx context.Context) (domain.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarm()
	task, err := s.machine.Stop(s.clock.Now())
	if err != nil {
		return domain.Task{}, false, err
	}
	return s.saveLocked(ctx, task)
}

func (s *SessionTimer) Continue() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != nil {
		return apperrors.ErrTickerActive
	}
	if err := s.machine.Continue(s.clock.Now()); err != nil {
		return err
	}
	s.arm()
	return nil
}

func (s *SessionTimer) Next(ctx context.Context) (domain.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, err := s.machine.Next()
	if err != nil {
		return domain.Task{}, false, err
	}
	return s.saveLocked(ctx, task)
}

func (s *SessionTimer) tick(generation uint64) {
	s.mu.Lock()
	if generation != s.generation || s.handle == nil {
		s.mu.Unlock()
		return
	}
	completed, err := s.machine.Tick(s.clock.Now())
	if err != nil {
		s.mu.Unlock()
		s.logger.Error("tick rejected", "error", err)
		return
	}
	if !completed {
		s.mu.Unlock()
		return
	}
	s.disarm()
	task, _ := s.machine.Task()
	hook := s.onComplete
	s.mu.Unlock()

	s.logger.Info("session completed", "task", task.Name, "total_seconds", task.TotalTime)
	if hook != nil {
		hook(task)
	}
}

// arm starts the single countdown ticker. Callers hold mu and have checked
// that no handle is stored.
func (s *SessionTimer) arm() {
	s.generation++
	generation := s.generation
	s.handle = s.ticker.Every(tickInterval, func() { s.tick(generation) })
}

// disarm cancels the pending tick. Bumping the generation drops a callback
// that already fired and is waiting for the lock.
func (s *SessionTimer) disarm() {
	if s.handle != nil {
		s.handle.Stop()
		s.handle = nil
	}
	s.generation++
}

func (s *SessionTimer) saveLocked(ctx context.Context, task domain.Task) (domain.Task, bool, error) {
	if !task.Persistable() {
		s.logger.Debug("task discarded without recorded time", "task", task.Name)
		return task, false, nil
	}
	task.EndTime = s.clock.Now()
	s.history = domain.Prepend(s.history, task)
	payload, err := domain.EncodeHistory(s.history)
	if err != nil {
		return task, true, err
	}
	if err := s.store.Set(ctx, domain.HistoryKey, payload); err != nil {
		return task, true, fmt.Errorf("persist history: %w", err)
	}
	s.logger.Info("task saved", "task", task.Name, "total_seconds", task.TotalTime, "sessions", len(task.Sessions))
	return task, true, nil
}

func (s *SessionTimer) snapshotLocked() Snapshot {
	task, ok := s.machine.Task()
	return Snapshot{
		Phase:    s.machine.Phase(),
		TimeLeft: s.machine.TimeLeft(),
		Running:  s.machine.IsRunning(),
		Paused:   s.machine.IsPaused(),
		Task:     task,
		HasTask:  ok,
		Window:   s.machine.Window(),
	}
}

func (s *SessionTimer) currentName() string {
	task, _ := s.machine.Task()
	return task.Name
}

func cloneHistory(history []domain.Task) []domain.Task {
	out := make([]domain.Task, len(history))
	for i, task := range history {
		out[i] = task.Clone()
	}
	return out
}
