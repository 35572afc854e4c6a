// Package lunar answers calendar questions about the Chinese lunisolar
// calendar. Conversion is delegated to lunar-go, which implements the
// standard rules including leap months.
package lunar

import (
	"time"

	"github.com/6tail/lunar-go/calendar"
)

// IsNewYear reports whether the Gregorian date of t (in t's own location) is
// the first day of the first lunar month. Leap months are reported by lunar-go
// as negative month numbers and never match.
func IsNewYear(t time.Time) bool {
	l := calendar.NewSolarFromYmd(t.Year(), int(t.Month()), t.Day()).GetLunar()
	return l.GetMonth() == 1 && l.GetDay() == 1
}

// NewYearDate returns the Gregorian date, at UTC midnight, on which the lunar
// year that begins during the Gregorian year `year` starts.
func NewYearDate(year int) time.Time {
	s := calendar.NewLunarFromYmd(year, 1, 1).GetSolar()
	return time.Date(s.GetYear(), time.Month(s.GetMonth()), s.GetDay(), 0, 0, 0, 0, time.UTC)
}
