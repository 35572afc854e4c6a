package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/diegoclair/monthly-report/internal/domain"
	"github.com/diegoclair/monthly-report/internal/domain/contract"
	"github.com/diegoclair/monthly-report/internal/domain/entity"
)

type rosterService struct {
	dm     contract.DataManager
	source contract.RosterSource
	logger *slog.Logger
}

func newRoster(dm contract.DataManager, source contract.RosterSource, logger *slog.Logger) *rosterService {
	return &rosterService{
		dm:     dm,
		source: source,
		logger: logger,
	}
}

func (s *rosterService) ListStaff(ctx context.Context) ([]*entity.Staff, error) {
	staff, err := s.dm.Staff().GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return staff, nil
}

// GetReport returns nil without error when no report exists for month.
func (s *rosterService) GetReport(ctx context.Context, month string) (*entity.MonthlyReport, error) {
	if _, err := entity.ParseMonth(month); err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMonth, month)
	}

	report, err := s.dm.Report().GetByMonth(month)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return report, nil
}

// SyncStaff replaces the stored roster with the one from the configured source.
func (s *rosterService) SyncStaff(ctx context.Context) (int, error) {
	staff, origin, err := s.source.LoadStaff()
	if err != nil {
		return 0, fmt.Errorf("failed to load staff: %w", err)
	}

	var previous int
	err = s.dm.WithTransaction(ctx, func(tx contract.DataManager) error {
		count, err := tx.Staff().Count()
		if err != nil {
			return fmt.Errorf("failed to count staff: %w", err)
		}
		previous = count

		if err := tx.Staff().DeleteAll(); err != nil {
			return fmt.Errorf("failed to clear staff: %w", err)
		}
		for _, member := range staff {
			if err := tx.Staff().Create(member); err != nil {
				return fmt.Errorf("failed to create staff %q: %w", member.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "staff roster synced", slog.String("source", origin),
		slog.Int("previous", previous),
		slog.Int("total", len(staff)))
	return len(staff), nil
}
