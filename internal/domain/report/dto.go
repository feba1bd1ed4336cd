package report

import (
	"time"

	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AttendanceReportRequest struct {
	DateFrom   string  `json:"date_from"`
	DateTo     string  `json:"date_to"`
	Department *string `json:"department,omitempty"`
}

func (r *AttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	from, fromOK := validator.IsValidDate(r.DateFrom)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from is required in YYYY-MM-DD format",
		})
	}
	to, toOK := validator.IsValidDate(r.DateTo)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to is required in YYYY-MM-DD format",
		})
	}
	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: ErrInvalidDateRange.Error(),
		})
	}
	if r.Department != nil && validator.IsEmpty(*r.Department) {
		r.Department = nil
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Range returns the parsed bounds. Call after Validate.
func (r *AttendanceReportRequest) Range() (time.Time, time.Time) {
	from, _ := validator.IsValidDate(r.DateFrom)
	to, _ := validator.IsValidDate(r.DateTo)
	return from, to
}

type AttendanceSummary struct {
	TotalRecords   int             `json:"total_records"`
	OnTime         int             `json:"on_time"`
	Late           int             `json:"late"`
	EarlyLeave     int             `json:"early_leave"`
	Absent         int             `json:"absent"`
	TotalWorkHours decimal.Decimal `json:"total_work_hours"`
}

type StaffAttendanceGroup struct {
	StaffID    int64                           `json:"staff_id"`
	StaffName  *string                         `json:"staff_name,omitempty"`
	Department *string                         `json:"department,omitempty"`
	Summary    AttendanceSummary               `json:"summary"`
	Records    []attendance.AttendanceResponse `json:"records"`
}

type AttendanceReport struct {
	DateFrom    string                          `json:"date_from"`
	DateTo      string                          `json:"date_to"`
	Department  *string                         `json:"department,omitempty"`
	GeneratedAt string                          `json:"generated_at"`
	Summary     AttendanceSummary               `json:"summary"`
	Staff       []StaffAttendanceGroup          `json:"staff"`
	Records     []attendance.AttendanceResponse `json:"records"`
}
