package shift

import (
	"context"
	"time"
)

type ShiftRepository interface {
	Create(ctx context.Context, s WorkShift) (WorkShift, error)
	GetByID(ctx context.Context, id string) (WorkShift, error)
	// FindByStaffAndDate returns every shift of the staff member on date, any status.
	FindByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]WorkShift, error)
	List(ctx context.Context, filter ShiftFilter) ([]WorkShift, int64, error)
	// Update writes only the non-nil fields of changes. A schedule change on
	// a completed shift fails with ErrCompletedShiftReschedule.
	Update(ctx context.Context, id string, changes ShiftChanges) (WorkShift, error)
	// UpdateStatus moves the shift from one status to another and fails with
	// ErrShiftStatusChanged when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to Status) (WorkShift, error)
	Delete(ctx context.Context, id string) error
	// MarkOverdueMissed flips scheduled shifts dated before the given day that
	// have no attendance log to missed, returning the affected ids.
	MarkOverdueMissed(ctx context.Context, before time.Time) ([]string, error)
}
