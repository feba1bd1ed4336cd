package shift

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	StaffID   int64   `json:"staff_id"`
	ShiftDate string  `json:"shift_date"` // YYYY-MM-DD
	ShiftType string  `json:"shift_type"`
	StartTime string  `json:"start_time"` // HH:MM
	EndTime   string  `json:"end_time"`   // HH:MM
	Notes     *string `json:"notes,omitempty"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StaffID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required and must be a positive number",
		})
	}
	errs = append(errs, validateDate("shift_date", r.ShiftDate)...)

	if validator.IsEmpty(r.ShiftType) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type",
			Message: "shift_type is required",
		})
	} else if !validator.IsInSlice(r.ShiftType, ShiftTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type",
			Message: "shift_type must be one of: " + strings.Join(ShiftTypeValues, ", "),
		})
	}

	errs = append(errs, validateInterval(&r.StartTime, &r.EndTime)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Interval returns the parsed date and times. Call after Validate.
func (r *CreateShiftRequest) Interval() (time.Time, ClockTime, ClockTime) {
	date, _ := time.Parse(DateLayout, r.ShiftDate)
	start, _ := ParseClockTime(r.StartTime)
	end, _ := ParseClockTime(r.EndTime)
	return date, start, end
}

type UpdateShiftRequest struct {
	ID        string  `json:"-"`
	ShiftDate *string `json:"shift_date,omitempty"`
	ShiftType *string `json:"shift_type,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	} else if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id must be a valid UUID"})
	}

	if r.ShiftDate == nil && r.ShiftType == nil && r.StartTime == nil && r.EndTime == nil && r.Notes == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one field must be provided",
		})
	}

	if r.ShiftDate != nil {
		errs = append(errs, validateDate("shift_date", *r.ShiftDate)...)
	}
	if r.ShiftType != nil && !validator.IsInSlice(*r.ShiftType, ShiftTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type",
			Message: "shift_type must be one of: " + strings.Join(ShiftTypeValues, ", "),
		})
	}
	if r.StartTime != nil && !validator.IsValidTime(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a valid time in HH:MM format",
		})
	}
	if r.EndTime != nil && !validator.IsValidTime(*r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a valid time in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ChangesSchedule reports whether the update moves the shift in time.
func (r *UpdateShiftRequest) ChangesSchedule() bool {
	return r.ShiftDate != nil || r.StartTime != nil || r.EndTime != nil
}

// ShiftChanges holds the columns an update writes; nil fields are left as stored.
type ShiftChanges struct {
	ShiftDate *time.Time
	ShiftType *ShiftType
	StartTime *ClockTime
	EndTime   *ClockTime
	Notes     *string
}

func (c ShiftChanges) ChangesSchedule() bool {
	return c.ShiftDate != nil || c.StartTime != nil || c.EndTime != nil
}

// Changes returns the parsed fields of the request. Call after Validate.
func (r *UpdateShiftRequest) Changes() ShiftChanges {
	var c ShiftChanges
	if r.ShiftDate != nil {
		date, _ := time.Parse(DateLayout, *r.ShiftDate)
		c.ShiftDate = &date
	}
	if r.ShiftType != nil {
		t := ShiftType(*r.ShiftType)
		c.ShiftType = &t
	}
	if r.StartTime != nil {
		start, _ := ParseClockTime(*r.StartTime)
		c.StartTime = &start
	}
	if r.EndTime != nil {
		end, _ := ParseClockTime(*r.EndTime)
		c.EndTime = &end
	}
	c.Notes = r.Notes
	return c
}

// Apply merges the supplied fields onto current. Call after Validate.
func (r *UpdateShiftRequest) Apply(current WorkShift) (WorkShift, error) {
	updated := current
	if r.ShiftDate != nil {
		updated.ShiftDate, _ = time.Parse(DateLayout, *r.ShiftDate)
	}
	if r.ShiftType != nil {
		updated.ShiftType = ShiftType(*r.ShiftType)
	}
	if r.StartTime != nil {
		updated.StartTime, _ = ParseClockTime(*r.StartTime)
	}
	if r.EndTime != nil {
		updated.EndTime, _ = ParseClockTime(*r.EndTime)
	}
	if r.Notes != nil {
		updated.Notes = r.Notes
	}
	if updated.EndTime <= updated.StartTime {
		return current, validator.ValidationErrors{{
			Field:   "end_time",
			Message: "end_time must be after start_time",
		}}
	}
	return updated, nil
}

type ShiftFilter struct {
	StaffID   *int64  `json:"staff_id,omitempty"`
	DateFrom  *string `json:"date_from,omitempty"`
	DateTo    *string `json:"date_to,omitempty"`
	Status    *string `json:"status,omitempty"`
	ShiftType *string `json:"shift_type,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ShiftFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StaffID != nil && *f.StaffID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id must be a positive number",
		})
	}
	if f.DateFrom != nil {
		errs = append(errs, validateDate("date_from", *f.DateFrom)...)
	}
	if f.DateTo != nil {
		errs = append(errs, validateDate("date_to", *f.DateTo)...)
	}
	if f.DateFrom != nil && f.DateTo != nil && *f.DateTo < *f.DateFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be on or after date_from",
		})
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(StatusValues, ", "),
		})
	}
	if f.ShiftType != nil && !validator.IsInSlice(*f.ShiftType, ShiftTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type",
			Message: "shift_type must be one of: " + strings.Join(ShiftTypeValues, ", "),
		})
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ConflictCheckRequest struct {
	StaffID        int64   `json:"staff_id"`
	ShiftDate      string  `json:"shift_date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	ExcludeShiftID *string `json:"exclude_shift_id,omitempty"`
}

func (r *ConflictCheckRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StaffID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required and must be a positive number",
		})
	}
	errs = append(errs, validateDate("shift_date", r.ShiftDate)...)
	errs = append(errs, validateInterval(&r.StartTime, &r.EndTime)...)
	if r.ExcludeShiftID != nil && !validator.IsValidUUID(*r.ExcludeShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "exclude_shift_id",
			Message: "exclude_shift_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID        string  `json:"id"`
	StaffID   int64   `json:"staff_id"`
	ShiftDate string  `json:"shift_date"`
	ShiftType string  `json:"shift_type"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type ListShiftResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Shifts     []ShiftResponse `json:"shifts"`
}

type ConflictCheckResponse struct {
	HasConflict bool            `json:"has_conflict"`
	Conflicts   []ShiftResponse `json:"conflicts"`
}

func ToResponse(s WorkShift) ShiftResponse {
	return ShiftResponse{
		ID:        s.ID,
		StaffID:   s.StaffID,
		ShiftDate: s.ShiftDate.Format(DateLayout),
		ShiftType: string(s.ShiftType),
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		Status:    string(s.Status),
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

func ToResponses(shifts []WorkShift) []ShiftResponse {
	out := make([]ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, ToResponse(s))
	}
	return out
}

func validateDate(field, value string) validator.ValidationErrors {
	if validator.IsEmpty(value) {
		return validator.ValidationErrors{{Field: field, Message: field + " is required"}}
	}
	if _, ok := validator.IsValidDate(value); !ok {
		return validator.ValidationErrors{{Field: field, Message: field + " must be a valid date in YYYY-MM-DD format"}}
	}
	return nil
}

func validateInterval(start, end *string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	startOK, endOK := false, false

	if validator.IsEmpty(*start) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time is required"})
	} else if !validator.IsValidTime(*start) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be a valid time in HH:MM format"})
	} else {
		startOK = true
	}

	if validator.IsEmpty(*end) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time is required"})
	} else if !validator.IsValidTime(*end) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be a valid time in HH:MM format"})
	} else {
		endOK = true
	}

	// zero-padded HH:MM compares correctly as a string
	if startOK && endOK && *end <= *start {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be after start_time"})
	}
	return errs
}
