package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/diegoclair/monthly-report/internal/domain"
	"github.com/diegoclair/monthly-report/internal/domain/entity"
	"github.com/diegoclair/monthly-report/internal/lunar"
)

type job struct {
	id       string
	name     string
	spec     string
	schedule cron.Schedule
	// when, if set, must hold at the trigger instant for the job to fire
	when func(instant time.Time) bool
	// next, if set, computes the next run for listings instead of the schedule
	next func(from time.Time) time.Time
	run  func(ctx context.Context, instant time.Time, report *entity.RunReport) error
}

func (s *scheduler) declareJobs() ([]*job, error) {
	jobs := []*job{
		{
			id:   domain.JobMonthlyReport,
			name: "Monthly report",
			spec: domain.MonthlyReportSpec,
			run:  s.sendMonthlyReport,
		},
		{
			id:   domain.JobBirthdayCheck,
			name: "Birthday cards",
			spec: domain.BirthdayCheckSpec,
			run:  s.sendBirthdayCards,
		},
		{
			id:   domain.JobChristmas,
			name: "Christmas cards",
			spec: domain.ChristmasSpec,
			run:  s.sendHolidayCards(entity.HolidayChristmas),
		},
		{
			id:   domain.JobNewYear,
			name: "New Year cards",
			spec: domain.NewYearSpec,
			run:  s.sendHolidayCards(entity.HolidayNewYear),
		},
		{
			id:   domain.JobLunarNewYear,
			name: "Lunar New Year cards",
			spec: domain.LunarNewYearSpec,
			when: lunar.IsNewYear,
			next: nextLunarNewYear,
			run:  s.sendHolidayCards(entity.HolidayLunarNewYear),
		},
	}

	for _, j := range jobs {
		schedule, err := cron.ParseStandard(j.spec)
		if err != nil {
			return nil, fmt.Errorf("invalid schedule %q for job %s: %w", j.spec, j.id, err)
		}
		j.schedule = schedule
	}

	return jobs, nil
}

// nextLunarNewYear returns local midnight of the first lunar new year day
// after from.
func nextLunarNewYear(from time.Time) time.Time {
	for year := from.Year(); year <= from.Year()+1; year++ {
		date := lunar.NewYearDate(year)
		midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, from.Location())
		if midnight.After(from) {
			return midnight
		}
	}
	return time.Time{}
}

// sendMonthlyReport mails the previous month's report to everyone.
func (s *scheduler) sendMonthlyReport(ctx context.Context, instant time.Time, report *entity.RunReport) error {
	month := entity.PreviousMonth(instant)

	monthly, err := s.dm.Report().GetByMonth(month)
	if err != nil {
		return fmt.Errorf("failed to get report for %s: %w", month, err)
	}
	if monthly == nil {
		s.logger.WarnContext(ctx, "no monthly report found, nothing to send", slog.String("month", month))
		return nil
	}

	staff, err := s.dm.Staff().GetAll()
	if err != nil {
		return fmt.Errorf("failed to get staff: %w", err)
	}

	return s.broadcast(ctx, staff, report, func(ctx context.Context, member *entity.Staff) error {
		return s.mail.SendMonthlyReport(ctx, member, monthly)
	})
}

// sendBirthdayCards matches birthdays on month and day, never on year.
func (s *scheduler) sendBirthdayCards(ctx context.Context, instant time.Time, report *entity.RunReport) error {
	staff, err := s.dm.Staff().GetByBirthday(instant.Month(), instant.Day())
	if err != nil {
		return fmt.Errorf("failed to get birthdays: %w", err)
	}
	if len(staff) == 0 {
		s.logger.InfoContext(ctx, "no birthdays today")
		return nil
	}

	s.logger.InfoContext(ctx, "sending birthday cards", slog.Int("count", len(staff)))
	return s.broadcast(ctx, staff, report, s.mail.SendBirthdayCard)
}

func (s *scheduler) sendHolidayCards(kind entity.HolidayKind) func(context.Context, time.Time, *entity.RunReport) error {
	return func(ctx context.Context, _ time.Time, report *entity.RunReport) error {
		staff, err := s.dm.Staff().GetAll()
		if err != nil {
			return fmt.Errorf("failed to get staff: %w", err)
		}

		s.logger.InfoContext(ctx, "sending holiday cards", slog.String("holiday", string(kind)), slog.Int("count", len(staff)))
		return s.broadcast(ctx, staff, report, func(ctx context.Context, member *entity.Staff) error {
			return s.mail.SendHolidayCard(ctx, member, kind)
		})
	}
}
