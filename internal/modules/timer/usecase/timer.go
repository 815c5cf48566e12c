package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"tasktimer/internal/modules/timer/domain"
	"tasktimer/internal/modules/timer/dto"
	timerin "tasktimer/internal/modules/timer/port/in"
	timerout "tasktimer/internal/modules/timer/port/out"
	"tasktimer/internal/modules/timer/service"
	"tasktimer/internal/platform/clock"
	apperrors "tasktimer/internal/platform/errors"
)

// Options carries the optional collaborators of the interactor. Nil ports
// disable the matching feature.
type Options struct {
	Clock     clock.Clock
	Notifier  timerout.Notifier
	Cue       timerout.CuePlayer
	Projector timerout.HistoryProjector
	Exporter  timerout.HistoryExporter
	Locale    domain.Locale
	Logger    hclog.Logger
}

type Interactor struct {
	svc       *service.SessionTimer
	clock     clock.Clock
	notifier  timerout.Notifier
	cue       timerout.CuePlayer
	projector timerout.HistoryProjector
	exporter  timerout.HistoryExporter
	locale    domain.Locale
	logger    hclog.Logger
}

func NewInteractor(svc *service.SessionTimer, opts Options) timerin.Usecase {
	i := &Interactor{
		svc:       svc,
		clock:     opts.Clock,
		notifier:  opts.Notifier,
		cue:       opts.Cue,
		projector: opts.Projector,
		exporter:  opts.Exporter,
		locale:    opts.Locale,
		logger:    opts.Logger,
	}
	if i.clock == nil {
		i.clock = clock.SystemClock{}
	}
	if i.locale == "" {
		i.locale = domain.LocaleEnglish
	}
	if i.logger == nil {
		i.logger = hclog.NewNullLogger()
	}
	svc.OnComplete(i.announce)
	return i
}

func (i *Interactor) Start(_ context.Context, input dto.StartInput) (dto.SnapshotOutput, error) {
	if err := i.svc.Start(input.Name, input.Notes); err != nil {
		return dto.SnapshotOutput{}, err
	}
	return i.snapshot(), nil
}

func (i *Interactor) Pause(context.Context) (dto.SnapshotOutput, error) {
	if err := i.svc.Pause(); err != nil {
		return dto.SnapshotOutput{}, err
	}
	return i.snapshot(), nil
}

func (i *Interactor) Resume(context.Context) (dto.SnapshotOutput, error) {
	if err := i.svc.Resume(); err != nil {
		return dto.SnapshotOutput{}, err
	}
	return i.snapshot(), nil
}

func (i *Interactor) TogglePause(context.Context) (dto.SnapshotOutput, error) {
	if err := i.svc.TogglePause(); err != nil {
		return dto.SnapshotOutput{}, err
	}
	return i.snapshot(), nil
}

func (i *Interactor) Continue(context.Context) (dto.SnapshotOutput, error) {
	if err := i.svc.Continue(); err != nil {
		return dto.SnapshotOutput{}, err
	}
	return i.snapshot(), nil
}

func (i *Interactor) Stop(ctx context.Context) (dto.FinishOutput, error) {
	task, saved, err := i.svc.Stop(ctx)
	return i.finish(ctx, task, saved, err)
}

func (i *Interactor) Next(ctx context.Context) (dto.FinishOutput, error) {
	task, saved, err := i.svc.Next(ctx)
	return i.finish(ctx, task, saved, err)
}

func (i *Interactor) Snapshot(context.Context) dto.SnapshotOutput {
	return i.snapshot()
}

func (i *Interactor) History(_ context.Context, input dto.HistoryInput) ([]dto.TaskOutput, error) {
	if input.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must be non-negative", apperrors.ErrInvalidInput)
	}
	history := i.svc.History()
	if input.Limit > 0 && input.Limit < len(history) {
		history = history[:input.Limit]
	}
	out := make([]dto.TaskOutput, 0, len(history))
	for _, task := range history {
		out = append(out, toTaskOutput(task))
	}
	return out, nil
}

func (i *Interactor) GetTask(_ context.Context, index int) (dto.TaskOutput, error) {
	history := i.svc.History()
	if index < 0 || index >= len(history) {
		return dto.TaskOutput{}, fmt.Errorf("%w: history entry %d", apperrors.ErrNotFound, index)
	}
	return toTaskOutput(history[index]), nil
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	if i.projector == nil {
		return dto.StatsOutput{}, fmt.Errorf("stats: %w", apperrors.ErrUnavailable)
	}
	stats, err := i.projector.Stats(ctx, i.clock.Now())
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return dto.StatsOutput{
		Tasks:             stats.Tasks,
		Sessions:          stats.Sessions,
		CompletedSessions: stats.CompletedSessions,
		TotalSeconds:      stats.TotalSeconds,
		TodaySeconds:      stats.TodaySeconds,
		Total:             domain.FormatDuration(stats.TotalSeconds, i.locale),
		Today:             domain.FormatDuration(stats.TodaySeconds, i.locale),
	}, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	if i.projector == nil {
		return fmt.Errorf("reindex: %w", apperrors.ErrUnavailable)
	}
	return i.projector.Rebuild(ctx, i.svc.History())
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	if i.exporter == nil {
		return dto.ExportOutput{}, fmt.Errorf("export: %w", apperrors.ErrUnavailable)
	}
	format := timerout.ExportFormat(strings.ToLower(strings.TrimSpace(input.Format)))
	if format == "" {
		format = timerout.ExportJSON
	}
	switch format {
	case timerout.ExportJSON, timerout.ExportYAML, timerout.ExportMarkdown:
	default:
		return dto.ExportOutput{}, fmt.Errorf("%w: unsupported export format %q", apperrors.ErrInvalidInput, input.Format)
	}
	if strings.TrimSpace(input.Path) == "" {
		return dto.ExportOutput{}, fmt.Errorf("%w: export path is required", apperrors.ErrInvalidInput)
	}
	history := i.svc.History()
	files, err := i.exporter.Export(ctx, format, input.Path, history)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Format: string(format), Tasks: len(history), Files: files}, nil
}

func (i *Interactor) finish(ctx context.Context, task domain.Task, saved bool, err error) (dto.FinishOutput, error) {
	if err != nil && !saved {
		return dto.FinishOutput{}, err
	}
	out := dto.FinishOutput{Task: toTaskOutput(task), Saved: saved}
	if saved && i.projector != nil {
		if rerr := i.projector.Rebuild(ctx, i.svc.History()); rerr != nil {
			i.logger.Warn("history projection out of date", "error", rerr)
		}
	}
	return out, err
}

// announce is called from the ticker goroutine. Notifier and cue run on a
// separate goroutine.
func (i *Interactor) announce(task domain.Task) {
	title, body := domain.CompletionNotice(task.Name, i.locale)
	go func() {
		ctx := context.Background()
		if i.notifier != nil {
			i.report("notification", i.notifier.Notify(ctx, title, body))
		}
		if i.cue != nil {
			i.report("sound cue", i.cue.Play(ctx))
		}
	}()
}

func (i *Interactor) report(what string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrUnavailable):
		i.logger.Debug(what+" skipped", "error", err)
	default:
		i.logger.Warn(what+" failed", "error", err)
	}
}

func (i *Interactor) snapshot() dto.SnapshotOutput {
	snap := i.svc.Snapshot()
	out := dto.SnapshotOutput{
		Phase:       string(snap.Phase),
		TimeLeft:    snap.TimeLeft,
		Remaining:   domain.FormatRemaining(snap.TimeLeft),
		IsRunning:   snap.Running,
		IsPaused:    snap.Paused,
		HasTask:     snap.HasTask,
		WindowStart: snap.Window.Start,
		WindowEnd:   snap.Window.End,
		StartLabel:  domain.FormatClock(snap.Window.Start),
		EndLabel:    domain.FormatClock(snap.Window.End),
	}
	if snap.HasTask {
		out.Task = toTaskOutput(snap.Task)
	}
	return out
}

func toTaskOutput(task domain.Task) dto.TaskOutput {
	sessions := make([]dto.SessionOutput, 0, len(task.Sessions))
	for _, s := range task.Sessions {
		sessions = append(sessions, dto.SessionOutput{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Duration:  s.Duration,
			Completed: s.Completed,
		})
	}
	return dto.TaskOutput{
		Name:              task.Name,
		Notes:             task.Notes,
		StartTime:         task.StartTime,
		EndTime:           task.EndTime,
		TotalTime:         task.TotalTime,
		CompletedSessions: task.CompletedSessions(),
		Sessions:          sessions,
	}
}
