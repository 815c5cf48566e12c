package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"tasktimer/internal/modules/timer/domain"
	"tasktimer/internal/modules/timer/dto"
	apperrors "tasktimer/internal/platform/errors"
)

type taskRunner interface {
	Start(ctx context.Context, name, notes string) (dto.SnapshotOutput, error)
	Continue(ctx context.Context) (dto.SnapshotOutput, error)
	Stop(ctx context.Context) (dto.FinishOutput, error)
	Next(ctx context.Context) (dto.FinishOutput, error)
	Snapshot(ctx context.Context) dto.SnapshotOutput
}

// runTask starts name and checks the countdown on every poll tick. Each
// completed session is continued until sessions have run; cancelling ctx
// stops the task early.
func runTask(ctx context.Context, w io.Writer, r taskRunner, name, notes string, sessions int, poll <-chan time.Time) (dto.FinishOutput, error) {
	if sessions < 1 {
		return dto.FinishOutput{}, fmt.Errorf("%w: sessions must be at least 1", apperrors.ErrInvalidInput)
	}
	snap, err := r.Start(ctx, name, notes)
	if err != nil {
		return dto.FinishOutput{}, err
	}
	_, _ = fmt.Fprintf(w, "%s  %s-%s\n", snap.Task.Name, snap.StartLabel, snap.EndLabel)

	done := 0
	last := ""
	for {
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(w)
			// ctx is already cancelled; the save must still go through.
			return r.Stop(context.WithoutCancel(ctx))
		case <-poll:
		}
		snap := r.Snapshot(ctx)
		if snap.Remaining != last {
			_, _ = fmt.Fprintf(w, "\r%s", snap.Remaining)
			last = snap.Remaining
		}
		if snap.Phase != string(domain.PhaseCompleted) {
			continue
		}
		done++
		_, _ = fmt.Fprintf(w, "\nsession %d/%d complete\n", done, sessions)
		if done >= sessions {
			return r.Next(ctx)
		}
		next, err := r.Continue(ctx)
		if err != nil {
			return dto.FinishOutput{}, err
		}
		_, _ = fmt.Fprintf(w, "continuing  %s-%s\n", next.StartLabel, next.EndLabel)
		last = ""
	}
}
