package models

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Mail     string `json:"mail"`
	Time     string `json:"time"`
}

type Staff struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Birthday string `json:"birthday"`
}

type StaffListResponse struct {
	Total int     `json:"total"`
	Data  []Staff `json:"data"`
}

type SyncResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type ReportItem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CalendarEvent struct {
	Date   string `json:"date"`
	Event  string `json:"event"`
	Detail string `json:"detail"`
}

type Report struct {
	Month     string          `json:"month"`
	Completed []ReportItem    `json:"completed"`
	Focus     []ReportItem    `json:"focus"`
	TaxNews   []ReportItem    `json:"tax_news"`
	Calendar  []CalendarEvent `json:"calendar"`
	Quote     string          `json:"quotes"`
}

type Job struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Spec    string    `json:"spec"`
	NextRun time.Time `json:"next_run"`
}

type JobListResponse struct {
	Total int   `json:"total"`
	Data  []Job `json:"data"`
}

type FailedDelivery struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Error string `json:"error"`
}

type RunReport struct {
	RunID      string           `json:"run_id"`
	JobID      string           `json:"job_id"`
	Instant    time.Time        `json:"instant"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Attempted  int              `json:"attempted"`
	Sent       int              `json:"sent"`
	Failed     int              `json:"failed"`
	Skipped    int              `json:"skipped"`
	Failures   []FailedDelivery `json:"failures,omitempty"`
	Error      string           `json:"error,omitempty"`
}
