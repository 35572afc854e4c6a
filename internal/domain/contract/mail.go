package contract

import (
	"context"

	"github.com/diegoclair/monthly-report/internal/domain/entity"
)

// MailSender delivers templated messages to a single staff member.
// Failures are returned as errors and never panic, so batch callers can
// record the result and move on to the next recipient.
type MailSender interface {
	SendBirthdayCard(ctx context.Context, staff *entity.Staff) error
	SendHolidayCard(ctx context.Context, staff *entity.Staff, kind entity.HolidayKind) error
	SendMonthlyReport(ctx context.Context, staff *entity.Staff, report *entity.MonthlyReport) error
}
