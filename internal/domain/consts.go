package domain

import "time"

// Scheduled job identifiers
const (
	JobMonthlyReport = "monthly_report"
	JobBirthdayCheck = "birthday_check"
	JobChristmas     = "christmas"
	JobNewYear       = "new_year"
	JobLunarNewYear  = "lunar_new_year_check"
)

// Cron specs (minute hour day-of-month month day-of-week) of the scheduled jobs
const (
	MonthlyReportSpec = "0 9 1 * *"
	BirthdayCheckSpec = "0 8 * * *"
	ChristmasSpec     = "0 8 25 12 *"
	NewYearSpec       = "0 0 1 1 *"
	LunarNewYearSpec  = "0 0 * * *"
)

const (
	DefaultTimezone     = "Asia/Taipei"
	DefaultPollInterval = time.Minute
	DefaultSendTimeout  = 30 * time.Second
	DefaultSenderName   = "財務處"
)
