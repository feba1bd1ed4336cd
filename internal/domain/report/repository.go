package report

import (
	"context"
	"time"

	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/attendance"
)

type ReportRepository interface {
	// FindAttendanceInRange returns logs dated within [from, to], joined with
	// staff display fields, ordered by attendance date then check-in.
	FindAttendanceInRange(ctx context.Context, from, to time.Time, department *string) ([]attendance.AttendanceLog, error)
}
