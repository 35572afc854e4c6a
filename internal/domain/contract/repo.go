package contract

import (
	"context"
	"time"

	"github.com/diegoclair/monthly-report/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Staff() StaffRepo
	Report() ReportRepo
	Ping(ctx context.Context) error
}

// StaffRepo defines the contract for the staff roster repository
type StaffRepo interface {
	Create(staff *entity.Staff) error
	GetAll() ([]*entity.Staff, error)
	GetByBirthday(month time.Month, day int) ([]*entity.Staff, error)
	DeleteAll() error
	Count() (int, error)
}

// ReportRepo defines the contract for the monthly report repository
type ReportRepo interface {
	Create(report *entity.MonthlyReport) error
	GetByMonth(month string) (*entity.MonthlyReport, error)
	Count() (int, error)
}
