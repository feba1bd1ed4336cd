package shift

import (
	"errors"
	"fmt"
)

var (
	ErrShiftNotFound   = errors.New("shift not found")
	ErrShiftConflict   = errors.New("shift overlaps an existing shift for this staff member")
	ErrShiftIDRequired = errors.New("shift ID is required")
	ErrInvalidShiftID  = errors.New("invalid shift ID")
	ErrInvalidStatus   = errors.New("invalid shift status")

	// ErrInvalidState is wrapped by every rejected status change.
	ErrInvalidState = errors.New("invalid shift state")

	ErrCompletedShiftDelete     = fmt.Errorf("%w: completed shifts cannot be deleted", ErrInvalidState)
	ErrCompletedShiftMissed     = fmt.Errorf("%w: completed shifts cannot be marked as missed", ErrInvalidState)
	ErrCompletedShiftCancel     = fmt.Errorf("%w: completed shifts cannot be cancelled", ErrInvalidState)
	ErrCompletedShiftReschedule = fmt.Errorf("%w: completed shifts cannot be rescheduled", ErrInvalidState)
	ErrShiftNotScheduled        = fmt.Errorf("%w: only scheduled shifts can be completed", ErrInvalidState)
	ErrShiftAlreadyMissed       = fmt.Errorf("%w: shift is already marked as missed", ErrInvalidState)
	ErrShiftAlreadyCancelled    = fmt.Errorf("%w: shift is already cancelled", ErrInvalidState)

	// ErrShiftStatusChanged is returned by guarded writes when the stored
	// status no longer matches the one the caller read.
	ErrShiftStatusChanged = fmt.Errorf("%w: shift status changed concurrently", ErrInvalidState)
)

// ConflictError lists every active shift the candidate interval overlaps.
type ConflictError struct {
	Conflicts []WorkShift
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s (%d conflicting)", ErrShiftConflict.Error(), len(e.Conflicts))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrShiftConflict
}

func NewConflictError(conflicts []WorkShift) error {
	return &ConflictError{Conflicts: conflicts}
}
