package in

import (
	"context"

	"tasktimer/internal/modules/timer/dto"
	timerin "tasktimer/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, name, notes string) (dto.SnapshotOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{Name: name, Notes: notes})
}

func (h CLIHandler) Pause(ctx context.Context) (dto.SnapshotOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (dto.SnapshotOutput, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) TogglePause(ctx context.Context) (dto.SnapshotOutput, error) {
	return h.usecase.TogglePause(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) (dto.FinishOutput, error) {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Continue(ctx context.Context) (dto.SnapshotOutput, error) {
	return h.usecase.Continue(ctx)
}

func (h CLIHandler) Next(ctx context.Context) (dto.FinishOutput, error) {
	return h.usecase.Next(ctx)
}

func (h CLIHandler) Snapshot(ctx context.Context) dto.SnapshotOutput {
	return h.usecase.Snapshot(ctx)
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]dto.TaskOutput, error) {
	return h.usecase.History(ctx, dto.HistoryInput{Limit: limit})
}

func (h CLIHandler) GetTask(ctx context.Context, index int) (dto.TaskOutput, error) {
	return h.usecase.GetTask(ctx, index)
}

func (h CLIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) Export(ctx context.Context, format, path string) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, dto.ExportInput{Format: format, Path: path})
}
