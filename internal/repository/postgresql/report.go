package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// FindAttendanceInRange implements report.ReportRepository.
func (r *reportRepositoryImpl) FindAttendanceInRange(ctx context.Context, from, to time.Time, department *string) ([]attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect + `
		WHERE al.attendance_date BETWEEN $1::date AND $2::date
		  AND ($3::text IS NULL OR sp.department = $3::text)
		ORDER BY al.attendance_date, al.check_in, al.id
	`
	rows, err := q.Query(ctx, query, from.Format(attendanceDateLayout), to.Format(attendanceDateLayout), department)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance range: %w", err)
	}
	logs, err := collectAttendance(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan attendance range: %w", err)
	}
	return logs, nil
}
