package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/diegoclair/monthly-report/internal/domain"
	"github.com/diegoclair/monthly-report/internal/domain/entity"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func taipeiTime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, taipei)
}

func Test_newScheduler(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	s := newTestScheduler(t, m, nil)

	ids := make([]string, 0, len(s.jobs))
	for _, j := range s.jobs {
		ids = append(ids, j.id)
		assert.NotNil(t, j.schedule, j.id)
		assert.NotNil(t, j.run, j.id)
	}
	assert.Equal(t, []string{
		domain.JobMonthlyReport,
		domain.JobBirthdayCheck,
		domain.JobChristmas,
		domain.JobNewYear,
		domain.JobLunarNewYear,
	}, ids)
	assert.False(t, s.running)
}

// scanFirings polls from start to end every step and collects what would fire
// per job, without running any job body.
func scanFirings(s *scheduler, start, end time.Time, step time.Duration) map[string][]time.Time {
	fired := make(map[string][]time.Time)
	s.due(start)
	for now := start.Add(step); !now.After(end); now = now.Add(step) {
		for _, f := range s.due(now) {
			fired[f.job.id] = append(fired[f.job.id], f.instant)
		}
	}
	return fired
}

func Test_scheduler_due_FullYear(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	s := newTestScheduler(t, m, nil)
	fired := scanFirings(s, taipeiTime(2026, 1, 1, 0, 0), taipeiTime(2027, 1, 1, 0, 5), 7*time.Minute)

	monthly := fired[domain.JobMonthlyReport]
	require.Len(t, monthly, 12)
	for i, instant := range monthly {
		assert.Equal(t, taipeiTime(2026, time.Month(i+1), 1, 9, 0), instant)
	}

	assert.Len(t, fired[domain.JobBirthdayCheck], 365)
	for _, instant := range fired[domain.JobBirthdayCheck] {
		assert.Equal(t, 8, instant.Hour())
		assert.Zero(t, instant.Minute())
	}

	assert.Equal(t, []time.Time{taipeiTime(2026, 12, 25, 8, 0)}, fired[domain.JobChristmas])
	assert.Equal(t, []time.Time{taipeiTime(2027, 1, 1, 0, 0)}, fired[domain.JobNewYear])
	assert.Equal(t, []time.Time{taipeiTime(2026, 2, 17, 0, 0)}, fired[domain.JobLunarNewYear])
}

func Test_scheduler_due_SameInstantFiresOnce(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	s := newTestScheduler(t, m, nil)
	s.due(taipeiTime(2026, 3, 1, 8, 59))

	var monthly int
	for _, now := range []time.Time{
		taipeiTime(2026, 3, 1, 9, 0),
		taipeiTime(2026, 3, 1, 9, 0).Add(20 * time.Second),
		taipeiTime(2026, 3, 1, 9, 0).Add(59 * time.Second),
		taipeiTime(2026, 3, 1, 9, 1),
	} {
		for _, f := range s.due(now) {
			if f.job.id == domain.JobMonthlyReport {
				monthly++
			}
		}
	}
	assert.Equal(t, 1, monthly)

	// a clock stepping back never re-opens the window
	assert.Empty(t, s.due(taipeiTime(2026, 3, 1, 8, 0)))
	assert.Empty(t, s.due(taipeiTime(2026, 3, 1, 9, 1)))
}

func Test_scheduler_due_CoalescesMissedInstants(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	s := newTestScheduler(t, m, nil)
	s.due(taipeiTime(2026, 3, 1, 7, 0))

	// three daily birthday instants were missed; only the latest fires
	var birthdays []time.Time
	for _, f := range s.due(taipeiTime(2026, 3, 3, 9, 0)) {
		if f.job.id == domain.JobBirthdayCheck {
			birthdays = append(birthdays, f.instant)
		}
	}
	assert.Equal(t, []time.Time{taipeiTime(2026, 3, 3, 8, 0)}, birthdays)
}

func Test_scheduler_due_PrunesLedger(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	s := newTestScheduler(t, m, nil)
	scanFirings(s, taipeiTime(2026, 3, 1, 0, 0), taipeiTime(2026, 3, 20, 0, 0), time.Hour)

	// birthday and lunar checks fire daily; two days of each survive pruning
	assert.LessOrEqual(t, s.ledger.size(), 6)
}

func Test_scheduler_tick_MonthlyReportPollingEveryMinute(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	staff := []*entity.Staff{
		{ID: 1, Name: "Alice", Email: "alice@example.com"},
		{ID: 2, Name: "Bob", Email: "bob@example.com"},
	}
	report := &entity.MonthlyReport{Month: "2026-01", Quote: "keep going"}

	m.mockReportRepo.EXPECT().GetByMonth("2026-01").Return(report, nil).Times(1)
	m.mockStaffRepo.EXPECT().GetAll().Return(staff, nil).Times(1)
	m.mockMailSender.EXPECT().SendMonthlyReport(gomock.Any(), staff[0], report).Return(nil).Times(1)
	m.mockMailSender.EXPECT().SendMonthlyReport(gomock.Any(), staff[1], report).Return(nil).Times(1)
	m.mockStaffRepo.EXPECT().GetByBirthday(time.February, 1).Return(nil, nil).Times(1)

	s := newTestScheduler(t, m, nil)

	start := taipeiTime(2026, 1, 31, 23, 0)
	s.tick(start)
	for now := start.Add(time.Minute); !now.After(taipeiTime(2026, 2, 2, 0, 0)); now = now.Add(time.Minute) {
		s.tick(now)
	}
	s.wg.Wait()
}

func Test_scheduler_tick_PanickingJobDoesNotStopLaterTicks(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	var reports []*entity.RunReport
	m.mockRunNotifier.EXPECT().NotifyRun(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, report *entity.RunReport) {
			reports = append(reports, report)
		},
	).Times(3)

	s := newTestScheduler(t, m, m.mockRunNotifier)

	everyMinute, err := cron.ParseStandard("* * * * *")
	require.NoError(t, err)
	s.jobs = []*job{{
		id:       "boom",
		name:     "Boom",
		schedule: everyMinute,
		run: func(context.Context, time.Time, *entity.RunReport) error {
			panic("template exploded")
		},
	}}

	start := taipeiTime(2026, 5, 1, 10, 0)
	s.tick(start)
	for i := 1; i <= 3; i++ {
		s.tick(start.Add(time.Duration(i) * time.Minute))
		s.wg.Wait()
	}

	require.Len(t, reports, 3)
	for _, report := range reports {
		require.Error(t, report.Err)
		assert.Contains(t, report.Err.Error(), "template exploded")
		assert.Equal(t, "boom", report.JobID)
	}
}

func Test_scheduler_tick_SkipsJobStillRunning(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	s := newTestScheduler(t, m, nil)

	everyMinute, err := cron.ParseStandard("* * * * *")
	require.NoError(t, err)

	release := make(chan struct{})
	var runs atomic.Int32
	s.jobs = []*job{{
		id:       "slow",
		schedule: everyMinute,
		run: func(context.Context, time.Time, *entity.RunReport) error {
			runs.Add(1)
			<-release
			return nil
		},
	}}

	start := taipeiTime(2026, 5, 1, 10, 0)
	s.tick(start)
	s.tick(start.Add(time.Minute))
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	s.tick(start.Add(2 * time.Minute))
	close(release)
	s.wg.Wait()

	assert.Equal(t, int32(1), runs.Load())
}

func Test_scheduler_BirthdayJob(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	alice := &entity.Staff{ID: 1, Name: "Alice", Email: "alice@example.com", Birthday: "1970.1.5", BirthMonth: time.January, BirthDay: 5}

	m.mockStaffRepo.EXPECT().GetByBirthday(time.January, 5).Return([]*entity.Staff{alice}, nil).Times(1)
	m.mockMailSender.EXPECT().SendBirthdayCard(gomock.Any(), alice).DoAndReturn(
		func(ctx context.Context, _ *entity.Staff) error {
			_, ok := ctx.Deadline()
			assert.True(t, ok, "send must run under a timeout")
			return nil
		},
	).Times(1)

	s := newTestScheduler(t, m, nil)
	report := &entity.RunReport{}

	err := s.sendBirthdayCards(context.Background(), taipeiTime(2030, 1, 5, 8, 0), report)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded())
}

func Test_scheduler_BirthdayJob_NoMatches(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	m.mockStaffRepo.EXPECT().GetByBirthday(time.March, 3).Return(nil, nil).Times(1)

	s := newTestScheduler(t, m, nil)
	report := &entity.RunReport{}

	require.NoError(t, s.sendBirthdayCards(context.Background(), taipeiTime(2026, 3, 3, 8, 0), report))
	assert.Zero(t, report.Attempted())
}

func Test_scheduler_MonthlyReportJob(t *testing.T) {
	tests := []struct {
		name      string
		instant   time.Time
		month     string
		report    *entity.MonthlyReport
		lookupErr error
		wantErr   bool
		wantSends int
	}{
		{
			name:      "sends previous month across a year boundary",
			instant:   taipeiTime(2026, 1, 1, 9, 0),
			month:     "2025-12",
			report:    &entity.MonthlyReport{Month: "2025-12"},
			wantSends: 1,
		},
		{
			name:    "missing report is a no-op",
			instant: taipeiTime(2026, 2, 1, 9, 0),
			month:   "2026-01",
		},
		{
			name:      "lookup failure",
			instant:   taipeiTime(2026, 2, 1, 9, 0),
			month:     "2026-01",
			lookupErr: errors.New("database is locked"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl := newServiceTestMock(t)
			defer ctrl.Finish()

			m.mockReportRepo.EXPECT().GetByMonth(tt.month).Return(tt.report, tt.lookupErr).Times(1)
			if tt.report != nil {
				m.mockStaffRepo.EXPECT().GetAll().Return([]*entity.Staff{{ID: 1, Name: "Alice", Email: "alice@example.com"}}, nil)
				m.mockMailSender.EXPECT().SendMonthlyReport(gomock.Any(), gomock.Any(), tt.report).Return(nil).Times(tt.wantSends)
			}

			s := newTestScheduler(t, m, nil)
			report := &entity.RunReport{}

			err := s.sendMonthlyReport(context.Background(), tt.instant, report)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSends, report.Attempted())
		})
	}
}

func Test_scheduler_RunJob_HolidayBroadcast(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	staff := []*entity.Staff{
		{ID: 1, Name: "Alice", Email: "alice@example.com"},
		{ID: 2, Name: "Bob", Email: "bob@example.com"},
		{ID: 3, Name: "Carol", Email: "  "},
		{ID: 4, Name: "Dan", Email: "dan@example.com"},
	}
	sendErr := errors.New("mailbox unavailable")

	m.mockStaffRepo.EXPECT().GetAll().Return(staff, nil)
	m.mockMailSender.EXPECT().SendHolidayCard(gomock.Any(), staff[0], entity.HolidayChristmas).Return(nil)
	m.mockMailSender.EXPECT().SendHolidayCard(gomock.Any(), staff[1], entity.HolidayChristmas).Return(sendErr)
	m.mockMailSender.EXPECT().SendHolidayCard(gomock.Any(), staff[3], entity.HolidayChristmas).Return(nil)
	m.mockRunNotifier.EXPECT().NotifyRun(gomock.Any(), gomock.Any()).Times(1)

	s := newTestScheduler(t, m, m.mockRunNotifier)

	report, err := s.RunJob(context.Background(), domain.JobChristmas)
	require.NoError(t, err)

	assert.NoError(t, report.Err)
	assert.Equal(t, domain.JobChristmas, report.JobID)
	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, 3, report.Attempted())
	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 1, report.Skipped)

	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, int64(2), failed[0].StaffID)
	assert.ErrorIs(t, failed[0].Err, sendErr)

	// manual runs leave the ledger alone
	assert.Zero(t, s.ledger.size())
}

func Test_scheduler_broadcast_RecoversSendPanic(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	s := newTestScheduler(t, m, nil)
	report := &entity.RunReport{}
	calls := 0

	err := s.broadcast(context.Background(), []*entity.Staff{
		{ID: 1, Email: "a@example.com"},
		{ID: 2, Email: "b@example.com"},
	}, report, func(context.Context, *entity.Staff) error {
		calls++
		if calls == 1 {
			panic("nil pointer")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, report.Succeeded())
	assert.Len(t, report.Failed(), 1)
}

func Test_scheduler_broadcast_StopsWhenCancelled(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	s := newTestScheduler(t, m, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.broadcast(ctx, []*entity.Staff{{ID: 1, Email: "a@example.com"}}, &entity.RunReport{},
		func(context.Context, *entity.Staff) error {
			t.Fatal("send must not run after cancellation")
			return nil
		})
	require.ErrorIs(t, err, context.Canceled)
}

func Test_scheduler_RunJob_Errors(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	s := newTestScheduler(t, m, nil)

	_, err := s.RunJob(context.Background(), "unknown")
	require.ErrorIs(t, err, domain.ErrJobNotFound)

	require.True(t, s.markRunning(domain.JobNewYear))
	_, err = s.RunJob(context.Background(), domain.JobNewYear)
	require.ErrorIs(t, err, domain.ErrJobRunning)
}

func Test_scheduler_Jobs(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	s := newTestScheduler(t, m, nil)

	next := map[string]time.Time{}
	for _, info := range s.Jobs() {
		assert.NotEmpty(t, info.Name)
		assert.NotEmpty(t, info.Spec)
		next[info.ID] = info.NextRun
	}

	// clock is fixed at 2026-01-01 00:00
	assert.Equal(t, taipeiTime(2026, 1, 1, 9, 0), next[domain.JobMonthlyReport])
	assert.Equal(t, taipeiTime(2026, 1, 1, 8, 0), next[domain.JobBirthdayCheck])
	assert.Equal(t, taipeiTime(2026, 12, 25, 8, 0), next[domain.JobChristmas])
	assert.Equal(t, taipeiTime(2027, 1, 1, 0, 0), next[domain.JobNewYear])
	assert.Equal(t, taipeiTime(2026, 2, 17, 0, 0), next[domain.JobLunarNewYear])
}

func Test_scheduler_StartStop(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	s := newTestScheduler(t, m, nil)

	s.Start()
	s.Start()
	assert.True(t, s.running)

	s.Stop()
	s.Stop()
	assert.False(t, s.running)
	assert.Error(t, s.ctx.Err())

	s.Start()
	assert.NoError(t, s.ctx.Err())
	s.Stop()
}

func (l *firingLedger) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fired)
}

func Test_nextLunarNewYear(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{name: "Should return this year's date before it", from: taipeiTime(2026, 1, 1, 0, 0), want: taipeiTime(2026, 2, 17, 0, 0)},
		{name: "Should skip the date once it started", from: taipeiTime(2026, 2, 17, 0, 0), want: taipeiTime(2027, 2, 6, 0, 0)},
		{name: "Should roll over to next year late in the year", from: taipeiTime(2025, 12, 31, 23, 59), want: taipeiTime(2026, 2, 17, 0, 0)},
		{name: "Should handle late january new years", from: taipeiTime(2027, 3, 1, 0, 0), want: taipeiTime(2028, 1, 26, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextLunarNewYear(tt.from)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}
