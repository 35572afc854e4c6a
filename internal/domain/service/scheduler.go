package service

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/diegoclair/monthly-report/internal/domain"
	"github.com/diegoclair/monthly-report/internal/domain/contract"
	"github.com/diegoclair/monthly-report/internal/domain/entity"
	"github.com/diegoclair/monthly-report/internal/logger"
)

const ledgerRetention = 48 * time.Hour

type scheduler struct {
	dm       contract.DataManager
	mail     contract.MailSender
	notifier contract.RunNotifier
	logger   *slog.Logger

	location     *time.Location
	pollInterval time.Duration
	sendTimeout  time.Duration
	now          func() time.Time
	newRunID     func() string

	jobs   []*job
	ledger *firingLedger

	mu        sync.Mutex
	running   bool
	stopChan  chan struct{}
	loopDone  chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
	lastCheck time.Time
	inFlight  map[string]bool
	wg        sync.WaitGroup
}

func newScheduler(dm contract.DataManager, mail contract.MailSender, notifier contract.RunNotifier, cfg Config) (*scheduler, error) {
	cfg = cfg.withDefaults()

	ctx, cancel := context.WithCancel(context.Background())
	s := &scheduler{
		dm:           dm,
		mail:         mail,
		notifier:     notifier,
		logger:       cfg.Logger,
		location:     cfg.Location,
		pollInterval: cfg.PollInterval,
		sendTimeout:  cfg.SendTimeout,
		now:          cfg.Now,
		newRunID:     cfg.NewRunID,
		ledger:       newFiringLedger(),
		ctx:          ctx,
		cancel:       cancel,
		inFlight:     make(map[string]bool),
	}

	jobs, err := s.declareJobs()
	if err != nil {
		cancel()
		return nil, err
	}
	s.jobs = jobs

	return s, nil
}

func (s *scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	if s.ctx.Err() != nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
	}

	s.running = true
	s.stopChan = make(chan struct{})
	s.loopDone = make(chan struct{})
	s.lastCheck = s.now().In(s.location)

	s.logger.Info("scheduler starting",
		slog.String("timezone", s.location.String()),
		slog.Duration("poll_interval", s.pollInterval),
		slog.Int("jobs", len(s.jobs)),
	)
	go s.mainLoop(s.stopChan, s.loopDone)
}

// Stop ends the loop, cancels running jobs and waits for them to return.
func (s *scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.logger.Info("scheduler stopping")
	s.running = false
	close(s.stopChan)
	s.cancel()
	done := s.loopDone
	s.mu.Unlock()

	<-done
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *scheduler) mainLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	s.tick(s.now())

	for {
		select {
		case <-ticker.C:
			s.tick(s.now())
		case <-stop:
			return
		}
	}
}

// tick fires every job whose latest trigger instant in (lastCheck, now] has
// not fired yet.
func (s *scheduler) tick(now time.Time) {
	for _, f := range s.due(now) {
		s.launch(f.job, f.instant)
	}
}

type firing struct {
	job     *job
	instant time.Time
}

// due advances lastCheck to now and returns the firings the window accepted.
// The first call after construction only sets lastCheck.
func (s *scheduler) due(now time.Time) []firing {
	now = now.In(s.location)

	s.mu.Lock()
	from := s.lastCheck
	if from.IsZero() {
		s.lastCheck = now
	}
	if from.IsZero() || !now.After(from) {
		s.mu.Unlock()
		return nil
	}
	s.lastCheck = now
	s.mu.Unlock()

	var firings []firing
	for _, j := range s.jobs {
		instant, ok := latestInstant(j, from, now)
		if !ok {
			continue
		}
		if j.when != nil && !j.when(instant) {
			continue
		}
		if !s.ledger.accept(j.id, instant) {
			continue
		}
		firings = append(firings, firing{job: j, instant: instant})
	}

	s.ledger.prune(now.Add(-ledgerRetention))
	return firings
}

func latestInstant(j *job, from, to time.Time) (time.Time, bool) {
	var latest time.Time
	for t := j.schedule.Next(from); !t.IsZero() && !t.After(to); t = j.schedule.Next(t) {
		latest = t
	}
	return latest, !latest.IsZero()
}

func (s *scheduler) launch(j *job, instant time.Time) {
	if !s.markRunning(j.id) {
		s.logger.Warn("previous run still executing, skipping",
			slog.String("job_id", j.id),
			slog.Time("instant", instant),
		)
		return
	}

	s.mu.Lock()
	ctx := s.ctx
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer s.markDone(j.id)
		s.execute(ctx, j, instant)
	}()
}

func (s *scheduler) markRunning(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[jobID] {
		return false
	}
	s.inFlight[jobID] = true
	return true
}

func (s *scheduler) markDone(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, jobID)
}

// execute runs one job body, recovering panics, and reports the outcome.
func (s *scheduler) execute(ctx context.Context, j *job, instant time.Time) *entity.RunReport {
	report := &entity.RunReport{
		RunID:     s.newRunID(),
		JobID:     j.id,
		Instant:   instant,
		StartedAt: s.now(),
	}
	ctx = logger.WithRun(ctx, j.id, report.RunID)

	s.logger.InfoContext(ctx, "job started", slog.String("job", j.name), slog.Time("instant", instant))

	func() {
		defer func() {
			if r := recover(); r != nil {
				report.Err = fmt.Errorf("job panicked: %v", r)
				s.logger.ErrorContext(ctx, "job panicked",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()
		report.Err = j.run(ctx, instant, report)
	}()

	report.FinishedAt = s.now()

	attrs := []any{
		slog.Int("attempted", report.Attempted()),
		slog.Int("sent", report.Succeeded()),
		slog.Int("failed", len(report.Failed())),
		slog.Int("skipped", report.Skipped),
		slog.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	}
	if report.Err != nil {
		s.logger.ErrorContext(ctx, "job failed", append(attrs, slog.String("error", report.Err.Error()))...)
	} else {
		s.logger.InfoContext(ctx, "job finished", attrs...)
	}

	if s.notifier != nil {
		s.notifier.NotifyRun(ctx, report)
	}

	return report
}

// RunJob executes a job immediately, outside of its schedule. The firing
// ledger is left untouched so the next scheduled instant still fires.
func (s *scheduler) RunJob(ctx context.Context, jobID string) (*entity.RunReport, error) {
	j := s.findJob(jobID)
	if j == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}

	if !s.markRunning(j.id) {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobRunning, jobID)
	}
	defer s.markDone(j.id)

	return s.execute(ctx, j, s.now().In(s.location)), nil
}

func (s *scheduler) Jobs() []entity.JobInfo {
	now := s.now().In(s.location)

	infos := make([]entity.JobInfo, 0, len(s.jobs))
	for _, j := range s.jobs {
		infos = append(infos, entity.JobInfo{
			ID:      j.id,
			Name:    j.name,
			Spec:    j.spec,
			NextRun: nextRun(j, now),
		})
	}
	return infos
}

func nextRun(j *job, from time.Time) time.Time {
	if j.next != nil {
		return j.next(from)
	}
	return j.schedule.Next(from)
}

func (s *scheduler) findJob(id string) *job {
	for _, j := range s.jobs {
		if j.id == id {
			return j
		}
	}
	return nil
}

// firingLedger remembers which (job, instant) pairs already fired.
type firingLedger struct {
	mu    sync.Mutex
	fired map[ledgerKey]time.Time
}

type ledgerKey struct {
	jobID   string
	instant int64
}

func newFiringLedger() *firingLedger {
	return &firingLedger{fired: make(map[ledgerKey]time.Time)}
}

// accept records the pair and reports whether it was new.
func (l *firingLedger) accept(jobID string, instant time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := ledgerKey{jobID: jobID, instant: instant.UnixNano()}
	if _, ok := l.fired[key]; ok {
		return false
	}
	l.fired[key] = instant
	return true
}

func (l *firingLedger) prune(before time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, instant := range l.fired {
		if instant.Before(before) {
			delete(l.fired, key)
		}
	}
}

