package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const shiftColumns = `id, staff_id, shift_date, shift_type,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	status, notes, created_at, updated_at`

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

func scanShift(row pgx.Row) (shift.WorkShift, error) {
	var (
		s         shift.WorkShift
		shiftType string
		status    string
		startStr  string
		endStr    string
	)
	if err := row.Scan(&s.ID, &s.StaffID, &s.ShiftDate, &shiftType, &startStr, &endStr, &status, &s.Notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return shift.WorkShift{}, err
	}
	start, err := shift.ParseClockTime(startStr)
	if err != nil {
		return shift.WorkShift{}, fmt.Errorf("stored start_time: %w", err)
	}
	end, err := shift.ParseClockTime(endStr)
	if err != nil {
		return shift.WorkShift{}, fmt.Errorf("stored end_time: %w", err)
	}
	s.ShiftType = shift.ShiftType(shiftType)
	s.Status = shift.Status(status)
	s.StartTime, s.EndTime = start, end
	return s, nil
}

func collectShifts(rows pgx.Rows) ([]shift.WorkShift, error) {
	defer rows.Close()
	shifts := []shift.WorkShift{}
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.WorkShift) (shift.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return shift.WorkShift{}, fmt.Errorf("failed to generate shift id: %w", err)
	}

	query := `
		INSERT INTO work_shifts (id, staff_id, shift_date, shift_type, start_time, end_time, status, notes)
		VALUES ($1, $2, $3::date, $4, $5::time, $6::time, $7, $8)
		RETURNING ` + shiftColumns

	created, err := scanShift(q.QueryRow(ctx, query,
		id.String(),
		s.StaffID,
		s.ShiftDate.Format(shift.DateLayout),
		string(s.ShiftType),
		s.StartTime.String(),
		s.EndTime.String(),
		string(s.Status),
		s.Notes,
	))
	if err != nil {
		return shift.WorkShift{}, fmt.Errorf("failed to insert shift: %w", err)
	}
	return created, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM work_shifts WHERE id = $1`
	s, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.WorkShift{}, shift.ErrShiftNotFound
		}
		return shift.WorkShift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return s, nil
}

// FindByStaffAndDate implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) FindByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]shift.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM work_shifts
		WHERE staff_id = $1 AND shift_date = $2::date
		ORDER BY start_time, id
	`
	rows, err := q.Query(ctx, query, staffID, date.Format(shift.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	return collectShifts(rows)
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.WorkShift, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.StaffID != nil {
		where = append(where, fmt.Sprintf("staff_id = $%d", argIdx))
		args = append(args, *filter.StaffID)
		argIdx++
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("shift_date >= $%d::date", argIdx))
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("shift_date <= $%d::date", argIdx))
		args = append(args, *filter.DateTo)
		argIdx++
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.ShiftType != nil {
		where = append(where, fmt.Sprintf("shift_type = $%d", argIdx))
		args = append(args, *filter.ShiftType)
		argIdx++
	}
	whereClause := strings.Join(where, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM work_shifts WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shifts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM work_shifts
		WHERE %s
		ORDER BY shift_date, start_time, staff_id
		LIMIT $%d OFFSET $%d
	`, shiftColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shifts: %w", err)
	}
	shifts, err := collectShifts(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan shifts: %w", err)
	}
	return shifts, total, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, id string, changes shift.ShiftChanges) (shift.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	var date, shiftType, start, end *string
	if changes.ShiftDate != nil {
		v := changes.ShiftDate.Format(shift.DateLayout)
		date = &v
	}
	if changes.ShiftType != nil {
		v := string(*changes.ShiftType)
		shiftType = &v
	}
	if changes.StartTime != nil {
		v := changes.StartTime.String()
		start = &v
	}
	if changes.EndTime != nil {
		v := changes.EndTime.String()
		end = &v
	}

	query := `
		UPDATE work_shifts
		SET shift_date = COALESCE($1::date, shift_date),
			shift_type = COALESCE($2::text, shift_type),
			start_time = COALESCE($3::time, start_time),
			end_time = COALESCE($4::time, end_time),
			notes = COALESCE($5::text, notes),
			updated_at = NOW()
		WHERE id = $6 AND (NOT $7::boolean OR status <> 'completed')
		RETURNING ` + shiftColumns

	updated, err := scanShift(q.QueryRow(ctx, query,
		date, shiftType, start, end, changes.Notes, id, changes.ChangesSchedule(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.WorkShift{}, r.missingOr(ctx, id, shift.ErrCompletedShiftReschedule)
		}
		return shift.WorkShift{}, fmt.Errorf("failed to update shift: %w", err)
	}
	return updated, nil
}

// UpdateStatus implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to shift.Status) (shift.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_shifts
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING ` + shiftColumns

	updated, err := scanShift(q.QueryRow(ctx, query, string(to), id, string(from)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.WorkShift{}, r.missingOr(ctx, id, shift.ErrShiftStatusChanged)
		}
		return shift.WorkShift{}, fmt.Errorf("failed to update shift status: %w", err)
	}
	return updated, nil
}

// missingOr tells a guarded write that matched no row apart from an unknown id.
func (r *shiftRepositoryImpl) missingOr(ctx context.Context, id string, guardErr error) error {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM work_shifts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check shift: %w", err)
	}
	if !exists {
		return shift.ErrShiftNotFound
	}
	return guardErr
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM work_shifts WHERE id = $1 AND status <> 'completed'`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// MarkOverdueMissed implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) MarkOverdueMissed(ctx context.Context, before time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_shifts ws
		SET status = 'missed', updated_at = NOW()
		WHERE ws.status = 'scheduled'
		  AND ws.shift_date < $1::date
		  AND NOT EXISTS (
			SELECT 1 FROM attendance_logs al
			WHERE al.staff_id = ws.staff_id AND al.attendance_date = ws.shift_date
		  )
		RETURNING ws.id
	`
	rows, err := q.Query(ctx, query, before.Format(shift.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to mark overdue shifts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
