package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultGracePeriod = 15 * time.Minute

// CheckInStatus is late only when at falls strictly after shiftStart plus grace.
func CheckInStatus(shiftStart, at time.Time, grace time.Duration) Status {
	if at.After(shiftStart.Add(grace)) {
		return StatusLate
	}
	return StatusOnTime
}

// IsEarlyLeave reports a check-out strictly before shiftEnd minus grace.
func IsEarlyLeave(shiftEnd, at time.Time, grace time.Duration) bool {
	return at.Before(shiftEnd.Add(-grace))
}

// CheckOutStatus returns the status after check-out. An early leave replaces
// whatever the check-in recorded.
func CheckOutStatus(current Status, shiftEnd *time.Time, at time.Time, grace time.Duration) Status {
	if shiftEnd != nil && IsEarlyLeave(*shiftEnd, at, grace) {
		return StatusEarlyLeave
	}
	return current
}

// CalculateWorkHours returns the elapsed hours rounded to two decimals.
func CalculateWorkHours(checkIn, checkOut time.Time) decimal.Decimal {
	return decimal.NewFromInt(int64(checkOut.Sub(checkIn))).
		Div(decimal.NewFromInt(int64(time.Hour))).
		Round(2)
}
