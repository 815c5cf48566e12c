package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tasktimer/internal/bootstrap"
	"tasktimer/internal/modules/timer/domain"
	"tasktimer/internal/modules/timer/dto"
	"tasktimer/internal/platform/config"
	"tasktimer/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "tasktimer",
		Short:         "15-minute task timer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(dataDir)
		},
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default $XDG_DATA_HOME/tasktimer)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newRunCmd(&dataDir))
	root.AddCommand(newHistoryCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newReindexCmd(&dataDir))
	root.AddCommand(newConfigCmd(&dataDir))
	return root
}

// loadApp builds the app for CLI commands, logging to stderr.
func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logging.New(os.Stderr, cfg.Log.Level), nil)
}

func runTUI(dataDir string) error {
	cfg, err := config.New(dataDir)
	if err != nil {
		return err
	}
	logger, closer, err := logging.NewFile(cfg.LogPath, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	app, err := bootstrap.New(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return bootstrap.RunTUI(app)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(*dataDir)
		},
	}
}

func newRunCmd(dataDir *string) *cobra.Command {
	var name, notes string
	var sessions int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time a task in the foreground; Ctrl+C stops it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			poll := time.NewTicker(200 * time.Millisecond)
			defer poll.Stop()

			out, err := runTask(ctx, cmd.OutOrStdout(), app.TimerCLI, name, notes, sessions, poll.C)
			if err != nil {
				return err
			}
			printFinish(cmd.OutOrStdout(), out, app.Locale)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "task", "", "task name (required)")
	cmd.Flags().StringVar(&notes, "notes", "", "task notes")
	cmd.Flags().IntVar(&sessions, "sessions", 1, "number of 15-minute sessions to run back to back")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}

func newHistoryCmd(dataDir *string) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Inspect saved tasks"}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved tasks, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			tasks, err := app.TimerCLI.History(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
				return nil
			}
			for i, task := range tasks {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%d/%d\t%s\n",
					i, domain.FormatDate(task.StartTime, app.Locale), task.Name,
					domain.FormatDuration(task.TotalTime, app.Locale),
					task.CompletedSessions, len(task.Sessions), humanize.Time(task.EndTime))
			}
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 0, "maximum number of tasks (0 = all)")

	showCmd := &cobra.Command{
		Use:   "show <index>",
		Short: "Show one saved task with its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index must be a number: %w", err)
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			task, err := app.TimerCLI.GetTask(context.Background(), index)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s\n", task.Name)
			if task.Notes != "" {
				_, _ = fmt.Fprintf(w, "notes: %s\n", task.Notes)
			}
			_, _ = fmt.Fprintf(w, "date: %s\ntotal: %s\n", domain.FormatDate(task.StartTime, app.Locale), domain.FormatDuration(task.TotalTime, app.Locale))
			for i, s := range task.Sessions {
				mark := "stopped"
				if s.Completed {
					mark = "completed"
				}
				_, _ = fmt.Fprintf(w, "  %d\t%s-%s\t%s\t%s\n", i+1, domain.FormatClock(s.StartTime), domain.FormatClock(s.EndTime),
					domain.FormatDuration(s.Duration, app.Locale), mark)
			}
			return nil
		},
	}

	var format, outPath string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export history as json, yaml or a markdown journal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.TimerCLI.Export(context.Background(), format, outPath)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d tasks as %s\n", out.Tasks, out.Format)
			for _, f := range out.Files {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "json|yaml|markdown")
	exportCmd.Flags().StringVar(&outPath, "out", "", "output file, or directory for markdown")
	_ = exportCmd.MarkFlagRequired("out")

	history.AddCommand(listCmd, showCmd, exportCmd)
	return history
}

func newStatsCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals across saved tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			stats, err := app.TimerCLI.Stats(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tasks: %d\nsessions: %d (%d completed)\ntotal: %s\ntoday: %s\n",
				stats.Tasks, stats.Sessions, stats.CompletedSessions, stats.Total, stats.Today)
			return nil
		},
	}
}

func newReindexCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite history projection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.TimerCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		},
	}
}

func newConfigCmd(dataDir *string) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Manage config.yaml"}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the current settings to config.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(*dataDir)
			if err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfg.Location)
			return nil
		},
	})
	return cfgCmd
}

func printFinish(w io.Writer, out dto.FinishOutput, locale domain.Locale) {
	if !out.Saved {
		_, _ = fmt.Fprintln(w, "stopped, nothing recorded")
		return
	}
	_, _ = fmt.Fprintf(w, "saved %s: %s over %d sessions\n", out.Task.Name,
		domain.FormatDuration(out.Task.TotalTime, locale), len(out.Task.Sessions))
}
