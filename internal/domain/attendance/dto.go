package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CheckInRequest struct {
	StaffID int64   `json:"-"`
	ShiftID *string `json:"shift_id,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StaffID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}
	if r.ShiftID != nil && !validator.IsValidUUID(*r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	StaffID int64   `json:"-"`
	Notes   *string `json:"notes,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	if r.StaffID <= 0 {
		return validator.ValidationErrors{{Field: "staff_id", Message: "staff_id is required"}}
	}
	return nil
}

// UpdateAttendanceRequest is the administrative correction path.
type UpdateAttendanceRequest struct {
	ID     string  `json:"-"`
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id must be a valid UUID"})
	}
	if r.Status == nil && r.Notes == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "status or notes must be provided",
		})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(StatusValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceFilter struct {
	StaffID  *int64  `json:"staff_id,omitempty"`
	DateFrom *string `json:"date_from,omitempty"`
	DateTo   *string `json:"date_to,omitempty"`
	Status   *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StaffID != nil && *f.StaffID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "staff_id must be a positive number"})
	}
	if f.DateFrom != nil {
		if _, ok := validator.IsValidDate(*f.DateFrom); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_from", Message: "date_from must be a valid date in YYYY-MM-DD format"})
		}
	}
	if f.DateTo != nil {
		if _, ok := validator.IsValidDate(*f.DateTo); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_to", Message: "date_to must be a valid date in YYYY-MM-DD format"})
		}
	}
	if f.DateFrom != nil && f.DateTo != nil && *f.DateTo < *f.DateFrom {
		errs = append(errs, validator.ValidationError{Field: "date_to", Message: "date_to must be on or after date_from"})
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(StatusValues, ", "),
		})
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must not exceed 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID             string           `json:"id"`
	StaffID        int64            `json:"staff_id"`
	StaffName      *string          `json:"staff_name,omitempty"`
	Department     *string          `json:"department,omitempty"`
	ShiftID        *string          `json:"shift_id,omitempty"`
	AttendanceDate string           `json:"attendance_date"`
	CheckIn        string           `json:"check_in"`
	CheckOut       *string          `json:"check_out,omitempty"`
	WorkHours      *decimal.Decimal `json:"work_hours,omitempty"`
	Status         string           `json:"status"`
	Notes          *string          `json:"notes,omitempty"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at"`
}

type ListAttendanceResponse struct {
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
	Records    []AttendanceResponse `json:"records"`
}

func ToResponse(a AttendanceLog) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID,
		StaffID:        a.StaffID,
		StaffName:      a.StaffName,
		Department:     a.Department,
		ShiftID:        a.ShiftID,
		AttendanceDate: a.AttendanceDate.Format(dateLayout),
		CheckIn:        a.CheckIn.Format(time.RFC3339),
		WorkHours:      a.WorkHours,
		Status:         string(a.Status),
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
	if a.CheckOut != nil {
		out := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &out
	}
	return resp
}
