package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const attendanceDateLayout = "2006-01-02"

const attendanceSelect = `
	SELECT al.id, al.staff_id, al.shift_id, al.attendance_date, al.check_in, al.check_out,
		al.work_hours, al.status, al.notes, al.created_at, al.updated_at,
		sp.full_name, sp.department
	FROM attendance_logs al
	JOIN staff_profiles sp ON sp.id = al.staff_id`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row pgx.Row) (attendance.AttendanceLog, error) {
	var (
		a         attendance.AttendanceLog
		workHours decimal.NullDecimal
		status    string
		name      string
		dept      string
	)
	err := row.Scan(
		&a.ID, &a.StaffID, &a.ShiftID, &a.AttendanceDate, &a.CheckIn, &a.CheckOut,
		&workHours, &status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
		&name, &dept,
	)
	if err != nil {
		return attendance.AttendanceLog{}, err
	}
	if workHours.Valid {
		a.WorkHours = &workHours.Decimal
	}
	a.Status = attendance.Status(status)
	a.StaffName, a.Department = &name, &dept
	return a, nil
}

func collectAttendance(rows pgx.Rows) ([]attendance.AttendanceLog, error) {
	defer rows.Close()
	logs := []attendance.AttendanceLog{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, a)
	}
	return logs, rows.Err()
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.AttendanceLog) (attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.AttendanceLog{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendance_logs (id, staff_id, shift_id, attendance_date, check_in, status, notes)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err = q.QueryRow(ctx, query,
		id.String(),
		a.StaffID,
		a.ShiftID,
		a.AttendanceDate.Format(attendanceDateLayout),
		a.CheckIn,
		string(a.Status),
		a.Notes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return attendance.AttendanceLog{}, fmt.Errorf("failed to insert attendance: %w", err)
	}
	return a, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE al.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceLog{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceLog{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

// FindByStaffAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) FindByStaffAndDate(ctx context.Context, staffID int64, date time.Time) (*attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect + ` WHERE al.staff_id = $1 AND al.attendance_date = $2::date`
	a, err := scanAttendance(q.QueryRow(ctx, query, staffID, date.Format(attendanceDateLayout)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance: %w", err)
	}
	return &a, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceLog, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.StaffID != nil {
		where = append(where, fmt.Sprintf("al.staff_id = $%d", argIdx))
		args = append(args, *filter.StaffID)
		argIdx++
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("al.attendance_date >= $%d::date", argIdx))
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("al.attendance_date <= $%d::date", argIdx))
		args = append(args, *filter.DateTo)
		argIdx++
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("al.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendance_logs al WHERE " + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY al.attendance_date DESC, al.check_in DESC
		LIMIT $%d OFFSET $%d`, attendanceSelect, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	logs, err := collectAttendance(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
	}
	return logs, total, nil
}

// RecordCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) RecordCheckOut(ctx context.Context, a attendance.AttendanceLog) (attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_logs
		SET check_out = $1,
			work_hours = $2,
			status = $3,
			notes = $4,
			updated_at = NOW()
		WHERE id = $5 AND check_out IS NULL
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query, a.CheckOut, nullDecimal(a.WorkHours), string(a.Status), a.Notes, a.ID).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceLog{}, r.missingOrClosed(ctx, q, a.ID)
		}
		return attendance.AttendanceLog{}, fmt.Errorf("failed to record check-out: %w", err)
	}
	return a, nil
}

// UpdateStatusNotes implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateStatusNotes(ctx context.Context, id string, status *attendance.Status, notes *string) (attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	query := `
		WITH al AS (
			UPDATE attendance_logs
			SET status = COALESCE($1::text, status),
				notes = COALESCE($2::text, notes),
				updated_at = NOW()
			WHERE id = $3
			RETURNING *
		)
		SELECT al.id, al.staff_id, al.shift_id, al.attendance_date, al.check_in, al.check_out,
			al.work_hours, al.status, al.notes, al.created_at, al.updated_at,
			sp.full_name, sp.department
		FROM al
		JOIN staff_profiles sp ON sp.id = al.staff_id
	`
	a, err := scanAttendance(q.QueryRow(ctx, query, statusArg, notes, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceLog{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceLog{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return a, nil
}

func (r *attendanceRepositoryImpl) missingOrClosed(ctx context.Context, q database.Querier, id string) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM attendance_logs WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check attendance: %w", err)
	}
	if !exists {
		return attendance.ErrAttendanceNotFound
	}
	return attendance.ErrAlreadyCheckedOut
}
