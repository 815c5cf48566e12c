package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"

	timerout "tasktimer/internal/modules/timer/port/out"
	apperrors "tasktimer/internal/platform/errors"
)

// ExecNotifier shows desktop notifications through notify-send on Linux and
// osascript on macOS.
type ExecNotifier struct {
	enabled  bool
	goos     string
	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args ...string) error
}

func NewExecNotifier(enabled bool) timerout.Notifier {
	return &ExecNotifier{
		enabled:  enabled,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
	}
}

func (n *ExecNotifier) Notify(ctx context.Context, title, body string) error {
	if !n.enabled {
		return fmt.Errorf("notifications disabled: %w", apperrors.ErrUnavailable)
	}
	var name string
	var args []string
	switch n.goos {
	case "linux", "freebsd", "openbsd":
		name = "notify-send"
		args = []string{"--app-name=tasktimer", title, body}
	case "darwin":
		name = "osascript"
		args = []string{"-e", "display notification " + strconv.Quote(body) + " with title " + strconv.Quote(title)}
	default:
		return fmt.Errorf("notifications on %s: %w", n.goos, apperrors.ErrUnavailable)
	}
	if _, err := n.lookPath(name); err != nil {
		return fmt.Errorf("%s not found: %w", name, apperrors.ErrUnavailable)
	}
	if err := n.run(ctx, name, args...); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}
