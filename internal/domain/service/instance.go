package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/diegoclair/monthly-report/internal/domain"
	"github.com/diegoclair/monthly-report/internal/domain/contract"
)

type Config struct {
	Location     *time.Location
	PollInterval time.Duration
	SendTimeout  time.Duration
	Logger       *slog.Logger

	// Now and NewRunID are replaced in tests.
	Now      func() time.Time
	NewRunID func() string
}

func (c Config) withDefaults() Config {
	if c.Location == nil {
		c.Location = time.UTC
	}
	if c.PollInterval <= 0 {
		c.PollInterval = domain.DefaultPollInterval
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = domain.DefaultSendTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.NewRunID == nil {
		c.NewRunID = uuid.NewString
	}
	return c
}

type Instance struct {
	Roster    contract.RosterService
	Scheduler contract.SchedulerService
}

func NewInstance(dm contract.DataManager, mail contract.MailSender, source contract.RosterSource, notifier contract.RunNotifier, cfg Config) (*Instance, error) {
	cfg = cfg.withDefaults()

	scheduler, err := newScheduler(dm, mail, notifier, cfg)
	if err != nil {
		return nil, err
	}

	return &Instance{
		Roster:    newRoster(dm, source, cfg.Logger),
		Scheduler: scheduler,
	}, nil
}
