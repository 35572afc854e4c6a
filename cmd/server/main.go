package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/diegoclair/monthly-report/internal/config"
	"github.com/diegoclair/monthly-report/internal/database"
	"github.com/diegoclair/monthly-report/internal/domain/service"
	"github.com/diegoclair/monthly-report/internal/handlers"
	"github.com/diegoclair/monthly-report/internal/logger"
	"github.com/diegoclair/monthly-report/internal/mailer"
	"github.com/diegoclair/monthly-report/internal/roster"
	"github.com/diegoclair/monthly-report/internal/slack"
	"github.com/diegoclair/monthly-report/migrator/sqlite"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	log := logger.New(logger.Config{
		SentryDSN:         cfg.Sentry.DSN,
		SentryEnvironment: cfg.Sentry.Environment,
		Level:             slog.LevelInfo,
	}, logger.RunExtractor, logger.JobExtractor)

	if envErr != nil {
		log.Warn("Warning: .env file not found")
	}

	if err := run(cfg, log); err != nil {
		log.Error("Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	location, err := cfg.Scheduler.Location()
	if err != nil {
		return err
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info("Running migrations...")
	if err := sqlite.Migrate(db.DB()); err != nil {
		return err
	}

	dm := database.NewInstance(db)
	loader := roster.NewLoader(roster.Config{
		DataJSON:    cfg.Staff.DataJSON,
		DataFile:    cfg.Staff.DataFile,
		ExampleFile: cfg.Staff.ExampleFile,
	}, log)

	if _, err := roster.Seed(ctx, dm, loader.Lenient(), log); err != nil {
		return err
	}

	sender, mailReady := newSender(ctx, cfg, log)
	mail := mailer.New(sender, mailer.NewDefaultRenderer(), mailer.Config{
		AppURL:     cfg.AppURL,
		SenderName: cfg.Mail.SenderName,
	})

	notifier := slack.New(slack.Config{
		BotToken: cfg.Slack.BotToken,
		Channel:  cfg.Slack.ReportChannel,
	}, log)

	svc, err := service.NewInstance(dm, mail, loader, notifier, service.Config{
		Location:     location,
		PollInterval: cfg.Scheduler.PollInterval,
		SendTimeout:  cfg.Mail.SendTimeout,
		Logger:       log,
	})
	if err != nil {
		return err
	}

	svc.Scheduler.Start()
	defer svc.Scheduler.Stop()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.New(svc.Roster, svc.Scheduler, dm, mailReady, log).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Server starting", slog.String("port", cfg.Port), slog.String("timezone", location.String()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
