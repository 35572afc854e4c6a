package entity

import (
	"fmt"
	"time"
)

// MonthLayout is the key format of monthly reports ("2026-01").
const MonthLayout = "2006-01"

type ReportItem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CalendarEvent struct {
	Date   string `json:"date"`
	Event  string `json:"event"`
	Detail string `json:"detail"`
}

type MonthlyReport struct {
	ID        int64
	Month     string
	Completed []ReportItem
	Focus     []ReportItem
	TaxNews   []ReportItem
	Calendar  []CalendarEvent
	Quote     string
}

// ParseMonth validates a report month key.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: want YYYY-MM", month)
	}
	return t, nil
}

// PreviousMonth returns the report key of the calendar month before t.
func PreviousMonth(t time.Time) string {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 0, -1).Format(MonthLayout)
}
