package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/diegoclair/monthly-report/internal/domain/entity"
)

type sendFunc func(ctx context.Context, staff *entity.Staff) error

// broadcast sends to every recipient and records each outcome. A failed
// recipient never stops the batch; only cancellation of ctx does.
func (s *scheduler) broadcast(ctx context.Context, recipients []*entity.Staff, report *entity.RunReport, send sendFunc) error {
	for _, staff := range recipients {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("broadcast interrupted: %w", err)
		}

		if !staff.HasEmail() {
			report.Skipped++
			s.logger.InfoContext(ctx, "staff has no email, skipping",
				slog.Int64("staff_id", staff.ID),
				slog.String("name", staff.Name),
			)
			continue
		}

		err := s.sendOne(ctx, staff, send)
		report.Deliveries = append(report.Deliveries, entity.Delivery{
			StaffID: staff.ID,
			Name:    staff.Name,
			Email:   staff.Email,
			Err:     err,
		})

		if err != nil {
			s.logger.ErrorContext(ctx, "failed to send email",
				slog.Int64("staff_id", staff.ID),
				slog.String("email", staff.Email),
				slog.String("error", err.Error()),
			)
			continue
		}
		s.logger.InfoContext(ctx, "email sent", slog.Int64("staff_id", staff.ID), slog.String("email", staff.Email))
	}

	return nil
}

func (s *scheduler) sendOne(ctx context.Context, staff *entity.Staff, send sendFunc) (err error) {
	ctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("send panicked: %v", r)
		}
	}()

	return send(ctx, staff)
}
