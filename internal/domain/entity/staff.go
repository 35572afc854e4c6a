package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Staff struct {
	ID         int64
	Name       string
	Email      string
	Birthday   string // raw roster value, e.g. "1970.1.5"
	BirthMonth time.Month
	BirthDay   int
}

// HasEmail reports whether the staff member can receive mail.
func (s *Staff) HasEmail() bool {
	return strings.TrimSpace(s.Email) != ""
}

// ParseBirthday parses the roster birthday format "YYYY.M.D".
// Dashes and slashes are accepted as separators as well.
func ParseBirthday(value string) (year int, month time.Month, day int, err error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, 0, 0, fmt.Errorf("empty birthday")
	}

	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == '.' || r == '-' || r == '/'
	})
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid birthday %q: want YYYY.M.D", value)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("invalid birthday %q: %w", value, convErr)
		}
		nums[i] = n
	}

	year, month, day = nums[0], time.Month(nums[1]), nums[2]
	if month < time.January || month > time.December {
		return 0, 0, 0, fmt.Errorf("invalid birthday %q: month out of range", value)
	}

	// Validate against a leap year so that Feb 29 is accepted regardless of the birth year.
	check := time.Date(2000, month, day, 0, 0, 0, 0, time.UTC)
	if day < 1 || check.Month() != month {
		return 0, 0, 0, fmt.Errorf("invalid birthday %q: day out of range", value)
	}

	return year, month, day, nil
}
