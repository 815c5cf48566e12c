package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	timerinadapter "tasktimer/internal/modules/timer/adapter/in"
	timeroutadapter "tasktimer/internal/modules/timer/adapter/out"
	"tasktimer/internal/modules/timer/domain"
	"tasktimer/internal/modules/timer/dto"
	timerout "tasktimer/internal/modules/timer/port/out"
	timerservice "tasktimer/internal/modules/timer/service"
	timerusecase "tasktimer/internal/modules/timer/usecase"
	"tasktimer/internal/platform/clock"
	"tasktimer/internal/platform/config"
	uiapp "tasktimer/internal/ui/app"
)

type App struct {
	TimerCLI timerinadapter.CLIHandler
	Locale   domain.Locale
	Logger   hclog.Logger

	closers []io.Closer
}

// New wires the timer module from cfg. The ticker drives the countdown; nil
// selects the wall-clock ticker.
func New(cfg config.Config, logger hclog.Logger, ticker clock.Ticker) (*App, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if ticker == nil {
		ticker = clock.SystemTicker{}
	}
	clk := clock.SystemClock{}
	locale := domain.Locale(cfg.Display.Locale)
	app := &App{Locale: locale, Logger: logger}

	var store timerout.KeyValueStore
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		sqliteStore, err := timeroutadapter.NewSQLiteKeyValueStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("new sqlite store: %w", err)
		}
		app.closers = append(app.closers, sqliteStore)
		store = sqliteStore
	default:
		store = timeroutadapter.NewFileKeyValueStore(cfg.DataDir)
	}

	projector, err := timeroutadapter.NewSQLiteHistoryProjector(cfg.DBPath)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new history projector: %w", err)
	}
	app.closers = append(app.closers, projector)

	svc := timerservice.NewSessionTimer(clk, ticker, store, logger.Named("timer"))
	history := svc.LoadHistory(context.Background())
	if err := projector.Rebuild(context.Background(), history); err != nil {
		logger.Warn("history projection rebuild failed", "error", err)
	}

	uc := timerusecase.NewInteractor(svc, timerusecase.Options{
		Clock:     clk,
		Notifier:  timeroutadapter.NewExecNotifier(cfg.Notifications.Enabled),
		Cue:       newCuePlayer(cfg.Sound, logger),
		Projector: projector,
		Exporter:  timeroutadapter.NewFileExporter(locale),
		Locale:    locale,
		Logger:    logger,
	})
	app.TimerCLI = timerinadapter.NewCLIHandler(uc)
	return app, nil
}

func newCuePlayer(cfg config.SoundConfig, logger hclog.Logger) timerout.CuePlayer {
	if !cfg.Enabled {
		return nil
	}
	var bell timerout.CuePlayer
	if cfg.Bell {
		bell = timeroutadapter.NewTerminalBell(os.Stdout)
	}
	return timeroutadapter.NewFallbackCuePlayer(timeroutadapter.NewBeepCuePlayer(0), bell, logger.Named("cue"))
}

// Close releases the database handles opened by New.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.TimerCLI, app.Locale)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if _, ferr := app.FinishActive(context.Background()); ferr != nil {
		err = errors.Join(err, ferr)
	}
	return err
}

// FinishActive saves whatever the timer still holds when the app shuts down.
// A completed task is closed with Next, a running or paused one with Stop. It
// reports false when the timer was idle.
func (a *App) FinishActive(ctx context.Context) (bool, error) {
	var (
		out dto.FinishOutput
		err error
	)
	switch a.TimerCLI.Snapshot(ctx).Phase {
	case string(domain.PhaseCompleted):
		out, err = a.TimerCLI.Next(ctx)
	case string(domain.PhaseRunning), string(domain.PhasePaused):
		out, err = a.TimerCLI.Stop(ctx)
	default:
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("finish active task: %w", err)
	}
	if out.Saved {
		a.Logger.Info("active task saved on exit", "task", out.Task.Name, "total_seconds", out.Task.TotalTime)
	}
	return true, nil
}
