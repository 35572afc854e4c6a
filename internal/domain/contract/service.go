package contract

import (
	"context"

	"github.com/diegoclair/monthly-report/internal/domain/entity"
)

type RosterService interface {
	ListStaff(ctx context.Context) ([]*entity.Staff, error)
	GetReport(ctx context.Context, month string) (*entity.MonthlyReport, error)
	SyncStaff(ctx context.Context) (int, error)
}

type SchedulerService interface {
	Start()
	Stop()
	Jobs() []entity.JobInfo
	RunJob(ctx context.Context, jobID string) (*entity.RunReport, error)
}

// RunNotifier receives the summary of every finished job run.
type RunNotifier interface {
	NotifyRun(ctx context.Context, report *entity.RunReport)
}

// RosterSource loads the staff roster from its configured origin.
type RosterSource interface {
	LoadStaff() ([]*entity.Staff, string, error)
}
