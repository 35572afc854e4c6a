package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/diegoclair/monthly-report/internal/config"
	"github.com/diegoclair/monthly-report/internal/handlers"
	"github.com/diegoclair/monthly-report/internal/mailer"
	"github.com/diegoclair/monthly-report/internal/mailer/gmail"
	"github.com/diegoclair/monthly-report/internal/mailer/resend"
	"github.com/diegoclair/monthly-report/internal/mailer/smtp"
	"github.com/diegoclair/monthly-report/internal/oauth"
)

// newSender builds the configured mail transport. A transport that cannot be
// configured is replaced by a disabled sender so the API and the scheduler
// keep running; every send then fails and is reported per recipient.
func newSender(ctx context.Context, cfg *config.Config, logger *slog.Logger) (mailer.Sender, handlers.ReadinessFunc) {
	sender, ready, err := buildSender(ctx, cfg, logger)
	if err != nil {
		logger.Error("Mail transport unavailable",
			slog.String("transport", cfg.Mail.Transport),
			slog.String("error", err.Error()))
		return mailer.DisabledSender{Reason: err}, func(context.Context) error { return err }
	}

	logger.Info("Mail transport ready", slog.String("transport", cfg.Mail.Transport))
	return sender, ready
}

func buildSender(ctx context.Context, cfg *config.Config, logger *slog.Logger) (mailer.Sender, handlers.ReadinessFunc, error) {
	alwaysReady := func(context.Context) error { return nil }

	senderEmail := cfg.Mail.SenderEmail
	if senderEmail == "" {
		senderEmail = cfg.Mail.GmailUser
	}

	switch cfg.Mail.Transport {
	case config.TransportOAuth:
		oauthCfg := oauth.Config{
			ClientID:        cfg.OAuth.ClientID,
			ClientSecret:    cfg.OAuth.ClientSecret,
			AccessToken:     cfg.OAuth.AccessToken,
			RefreshToken:    cfg.OAuth.RefreshToken,
			CredentialsFile: cfg.OAuth.CredentialsFile,
		}

		clientConfig, err := oauth.ClientConfig(oauthCfg)
		if err != nil {
			return nil, nil, err
		}

		var authorizer oauth.Authorizer
		if cfg.OAuth.Interactive {
			authorizer = &oauth.ConsoleAuthorizer{In: os.Stdin, Out: os.Stdout}
		}

		manager := oauth.NewManager(clientConfig, oauth.NewFileTokenStore(cfg.OAuth.TokenFile), oauth.EnvToken(oauthCfg), authorizer, logger)
		ts, err := manager.Ready(ctx)
		if err != nil {
			return nil, nil, err
		}

		sender, err := gmail.New(ctx, ts, gmail.Config{
			SenderName:  cfg.Mail.SenderName,
			SenderEmail: senderEmail,
		})
		if err != nil {
			return nil, nil, err
		}

		ready := func(ctx context.Context) error {
			_, err := manager.Ready(ctx)
			return err
		}
		return sender, ready, nil

	case config.TransportSMTP:
		sender, err := smtp.New(smtp.Config{
			Host:        cfg.Mail.SMTPHost,
			Port:        cfg.Mail.SMTPPort,
			Username:    cfg.Mail.GmailUser,
			Password:    cfg.Mail.GmailAppPassword,
			SenderName:  cfg.Mail.SenderName,
			SenderEmail: senderEmail,
			Timeout:     cfg.Mail.SendTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return sender, alwaysReady, nil

	case config.TransportResend:
		sender, err := resend.New(resend.Config{
			APIKey:      cfg.Mail.ResendAPIKey,
			SenderName:  cfg.Mail.SenderName,
			SenderEmail: senderEmail,
		})
		if err != nil {
			return nil, nil, err
		}
		return sender, alwaysReady, nil
	}

	return nil, nil, fmt.Errorf("%w: unknown MAIL_TRANSPORT %q", mailer.ErrConfigMissing, cfg.Mail.Transport)
}
