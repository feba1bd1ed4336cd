package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var conflictErr *shift.ConflictError
	if errors.As(err, &conflictErr) {
		Conflict(w, "SHIFT_CONFLICT", "Shift overlaps an existing shift for this staff member", map[string]interface{}{
			"conflicts": shift.ToResponses(conflictErr.Conflicts),
		})
		return
	}

	switch {
	// Staff
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "STAFF_NOT_FOUND", "Staff member not found")
	case errors.Is(err, staff.ErrStaffInactive):
		Forbidden(w, "STAFF_INACTIVE", "Staff member is not active")

	// Shift
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "SHIFT_NOT_FOUND", "Shift not found")
	case errors.Is(err, shift.ErrInvalidShiftID):
		BadRequest(w, "INVALID_SHIFT_ID", "Shift ID must be a valid UUID")
	case errors.Is(err, shift.ErrShiftIDRequired):
		BadRequest(w, "SHIFT_ID_REQUIRED", "Shift ID is required")
	case errors.Is(err, shift.ErrInvalidStatus):
		BadRequest(w, "INVALID_SHIFT_STATUS", "Invalid shift status")
	case errors.Is(err, shift.ErrInvalidState):
		Conflict(w, "INVALID_SHIFT_STATE", err.Error(), nil)

	// Attendance
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "ALREADY_CHECKED_IN", "You have already checked in today", nil)
	case errors.Is(err, attendance.ErrNoCheckIn):
		BadRequest(w, "NOT_CHECKED_IN", "You have not checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "ALREADY_CHECKED_OUT", "You have already checked out today", nil)
	case errors.Is(err, attendance.ErrInvalidCheckOutTime):
		BadRequest(w, "INVALID_CHECK_OUT_TIME", "Check-out time must be after check-in time")
	case errors.Is(err, attendance.ErrShiftNotAssigned):
		Forbidden(w, "SHIFT_NOT_ASSIGNED", "Shift is not assigned to you")
	case errors.Is(err, attendance.ErrShiftNotToday):
		BadRequest(w, "SHIFT_NOT_TODAY", "Shift is not scheduled for today")
	case errors.Is(err, attendance.ErrShiftNotActive):
		BadRequest(w, "SHIFT_NOT_ACTIVE", "Shift is cancelled or missed")
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, "INVALID_ATTENDANCE_STATUS", "Invalid attendance status")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "ATTENDANCE_NOT_FOUND", "Attendance record not found")

	// Report
	case errors.Is(err, report.ErrInvalidDateRange):
		BadRequest(w, "INVALID_DATE_RANGE", err.Error())

	// Infrastructure
	case errors.Is(err, lock.ErrLockTimeout):
		ServiceUnavailable(w, "Another change for this staff member is in progress, try again")

	default:
		slog.ErrorContext(r.Context(), "unhandled error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		InternalServerError(w, "An unexpected error occurred")
	}
}
