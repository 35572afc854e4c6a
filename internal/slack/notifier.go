package slack

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	slackgo "github.com/slack-go/slack"

	"github.com/diegoclair/monthly-report/internal/domain/contract"
	"github.com/diegoclair/monthly-report/internal/domain/entity"
)

type Config struct {
	BotToken string
	Channel  string
}

// Notifier posts a summary of every finished job run to a Slack channel.
type Notifier struct {
	client  contract.SlackClient
	channel string
	logger  *slog.Logger
}

func NewNotifier(client contract.SlackClient, channel string, logger *slog.Logger) *Notifier {
	return &Notifier{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// New returns a Slack notifier, or a no-op one when the bot token or the
// channel is not configured.
func New(cfg Config, logger *slog.Logger, opts ...slackgo.Option) contract.RunNotifier {
	if cfg.BotToken == "" || cfg.Channel == "" {
		logger.Info("Slack run summaries disabled")
		return Nop{}
	}
	return NewNotifier(slackgo.New(cfg.BotToken, opts...), cfg.Channel, logger)
}

func (n *Notifier) NotifyRun(ctx context.Context, report *entity.RunReport) {
	if report == nil {
		return
	}

	_, _, err := n.client.PostMessage(n.channel, slackgo.MsgOptionText(FormatSummary(report), false))
	if err != nil {
		n.logger.ErrorContext(ctx, "Failed to post run summary",
			slog.String("channel", n.channel),
			slog.String("error", err.Error()))
	}
}

// FormatSummary renders the Slack message text for a run.
func FormatSummary(report *entity.RunReport) string {
	failed := report.Failed()

	icon := "✅"
	switch {
	case report.Err != nil:
		icon = "❌"
	case len(failed) > 0:
		icon = "⚠️"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s* (%s)\n", icon, report.JobID, report.Instant.Format(time.DateTime+" MST"))
	fmt.Fprintf(&b, "Sent: %d | Failed: %d | Skipped: %d", report.Succeeded(), len(failed), report.Skipped)

	if report.Err != nil {
		fmt.Fprintf(&b, "\nError: %v", report.Err)
	}

	if len(failed) > 0 {
		b.WriteString("\n*Failed recipients:*")
		for _, d := range failed {
			fmt.Fprintf(&b, "\n• %s <%s>: %v", d.Name, d.Email, d.Err)
		}
	}

	if report.RunID != "" {
		fmt.Fprintf(&b, "\n_run %s_", report.RunID)
	}

	return b.String()
}

// Nop discards run summaries.
type Nop struct{}

func (Nop) NotifyRun(context.Context, *entity.RunReport) {}
