package config

import (
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/diegoclair/monthly-report/internal/domain"
)

// Mail transports selectable with MAIL_TRANSPORT
const (
	TransportOAuth  = "oauth"
	TransportSMTP   = "smtp"
	TransportResend = "resend"
)

type Config struct {
	Port         string
	DatabasePath string
	AppURL       string

	Scheduler SchedulerConfig
	Mail      MailConfig
	OAuth     OAuthConfig
	Staff     StaffConfig
	Slack     SlackConfig
	Sentry    SentryConfig
}

type SchedulerConfig struct {
	Timezone     string
	PollInterval time.Duration
}

type MailConfig struct {
	Transport        string
	SendTimeout      time.Duration
	SenderName       string
	SenderEmail      string
	GmailUser        string
	GmailAppPassword string
	SMTPHost         string
	SMTPPort         int
	ResendAPIKey     string
}

type OAuthConfig struct {
	ClientID        string
	ClientSecret    string
	AccessToken     string
	RefreshToken    string
	TokenFile       string
	CredentialsFile string
	Interactive     bool
}

type StaffConfig struct {
	DataJSON    string
	DataFile    string
	ExampleFile string
}

type SlackConfig struct {
	BotToken      string
	ReportChannel string
}

type SentryConfig struct {
	DSN         string
	Environment string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8000"),
		DatabasePath: getEnv("DATABASE_PATH", "./monthly_report.db"),
		AppURL:       getEnv("APP_URL", "http://localhost:8000"),
		Scheduler: SchedulerConfig{
			Timezone:     getEnv("SCHEDULER_TIMEZONE", domain.DefaultTimezone),
			PollInterval: getEnvDuration("SCHEDULER_POLL_INTERVAL", domain.DefaultPollInterval),
		},
		Mail: MailConfig{
			Transport:        strings.ToLower(getEnv("MAIL_TRANSPORT", TransportOAuth)),
			SendTimeout:      getEnvDuration("MAIL_SEND_TIMEOUT", domain.DefaultSendTimeout),
			SenderName:       getEnv("SENDER_NAME", domain.DefaultSenderName),
			SenderEmail:      getEnv("SENDER_EMAIL", ""),
			GmailUser:        getEnv("GMAIL_USER", ""),
			GmailAppPassword: getEnv("GMAIL_APP_PASSWORD", ""),
			SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:         getEnvInt("SMTP_PORT", 587),
			ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		},
		OAuth: OAuthConfig{
			ClientID:        getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret:    getEnv("GOOGLE_CLIENT_SECRET", ""),
			AccessToken:     getEnv("GOOGLE_OAUTH_TOKEN", ""),
			RefreshToken:    getEnv("GOOGLE_REFRESH_TOKEN", ""),
			TokenFile:       getEnv("GOOGLE_TOKEN_FILE", "token.json"),
			CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
			Interactive:     getEnvBool("OAUTH_INTERACTIVE", false),
		},
		Staff: StaffConfig{
			DataJSON:    getEnv("STAFF_DATA_JSON", ""),
			DataFile:    getEnv("STAFF_DATA_FILE", "staff_data.json"),
			ExampleFile: getEnv("STAFF_EXAMPLE_FILE", "staff_data.example.json"),
		},
		Slack: SlackConfig{
			BotToken:      getEnv("SLACK_BOT_TOKEN", ""),
			ReportChannel: getEnv("SLACK_REPORT_CHANNEL", ""),
		},
		Sentry: SentryConfig{
			DSN:         getEnv("SENTRY_DSN", ""),
			Environment: getEnv("SENTRY_ENVIRONMENT", "production"),
		},
	}
}

// Location resolves the scheduler time zone, falling back to UTC.
func (c SchedulerConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil && value > 0 {
		return value
	}
	return defaultValue
}
