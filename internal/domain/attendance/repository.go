package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, log AttendanceLog) (AttendanceLog, error)
	GetByID(ctx context.Context, id string) (AttendanceLog, error)
	// FindByStaffAndDate returns nil when the staff member has no log that day.
	FindByStaffAndDate(ctx context.Context, staffID int64, date time.Time) (*AttendanceLog, error)
	List(ctx context.Context, filter AttendanceFilter) ([]AttendanceLog, int64, error)
	// RecordCheckOut writes check-out, work hours, status and notes only while
	// the log is still open. A log already checked out yields ErrAlreadyCheckedOut.
	RecordCheckOut(ctx context.Context, log AttendanceLog) (AttendanceLog, error)
	// UpdateStatusNotes changes only status and notes; nil leaves a column as is.
	UpdateStatusNotes(ctx context.Context, id string, status *Status, notes *string) (AttendanceLog, error)
}
