package in

import (
	"context"

	"tasktimer/internal/modules/timer/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.SnapshotOutput, error)
	Pause(ctx context.Context) (dto.SnapshotOutput, error)
	Resume(ctx context.Context) (dto.SnapshotOutput, error)
	TogglePause(ctx context.Context) (dto.SnapshotOutput, error)
	Stop(ctx context.Context) (dto.FinishOutput, error)
	Continue(ctx context.Context) (dto.SnapshotOutput, error)
	Next(ctx context.Context) (dto.FinishOutput, error)
	Snapshot(ctx context.Context) dto.SnapshotOutput

	History(ctx context.Context, input dto.HistoryInput) ([]dto.TaskOutput, error)
	GetTask(ctx context.Context, index int) (dto.TaskOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Reindex(ctx context.Context) error
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
