package shift

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockTime is a wall-clock time of day as minutes since midnight.
type ClockTime int

const minutesPerDay = 24 * 60

// ParseClockTime accepts "HH:MM" and the "HH:MM:SS" form Postgres returns for TIME columns.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q, use HH:MM", s)
	}
	for _, p := range parts {
		if len(p) != 2 {
			return 0, fmt.Errorf("invalid time %q, use HH:MM", s)
		}
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid second in %q", s)
		}
	}
	return ClockTime(h*60 + m), nil
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

func (c ClockTime) Valid() bool {
	return c >= 0 && c < minutesPerDay
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On places the clock time on the calendar day of date, in date's location.
func (c ClockTime) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, date.Location())
}
