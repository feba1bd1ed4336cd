package attendance

import "errors"

var (
	// Check-in errors
	ErrAlreadyCheckedIn = errors.New("you have already checked in today")
	ErrShiftNotAssigned = errors.New("shift is not assigned to this staff member")
	ErrShiftNotToday    = errors.New("shift is not scheduled for today")
	ErrShiftNotActive   = errors.New("shift is cancelled or missed")

	// Check-out errors
	ErrNoCheckIn           = errors.New("you have not checked in today")
	ErrAlreadyCheckedOut   = errors.New("you have already checked out today")
	ErrInvalidCheckOutTime = errors.New("check-out time must be after check-in time")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidStatus      = errors.New("invalid attendance status")
)
