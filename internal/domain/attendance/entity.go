package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type AttendanceLog struct {
	ID             string
	StaffID        int64
	ShiftID        *string
	AttendanceDate time.Time
	CheckIn        time.Time
	CheckOut       *time.Time
	WorkHours      *decimal.Decimal
	Status         Status
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined from staff_profiles on reads
	StaffName  *string
	Department *string
}

type Status string

const (
	StatusOnTime     Status = "on_time"
	StatusLate       Status = "late"
	StatusEarlyLeave Status = "early_leave"
	StatusAbsent     Status = "absent"
)

var StatusValues = []string{
	string(StatusOnTime),
	string(StatusLate),
	string(StatusEarlyLeave),
	string(StatusAbsent),
}

func (a AttendanceLog) IsCheckedOut() bool {
	return a.CheckOut != nil
}
