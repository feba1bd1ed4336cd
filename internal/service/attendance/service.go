package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgconn"
)

const staffDayConstraint = "attendance_logs_staff_day_key"

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	shiftRepo      shift.ShiftRepository
	staffRepo      staff.StaffRepository
	clock          clock.Clock
	grace          time.Duration
	logger         *slog.Logger
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	shiftRepo shift.ShiftRepository,
	staffRepo staff.StaffRepository,
	clk clock.Clock,
	grace time.Duration,
	logger *slog.Logger,
) attendance.AttendanceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		shiftRepo:      shiftRepo,
		staffRepo:      staffRepo,
		clock:          clk,
		grace:          grace,
		logger:         logger.With("component", "attendance_service"),
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if _, err := staff.RequireActive(ctx, s.staffRepo, req.StaffID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.clock.Now()
	today := clock.Today(now)

	existing, err := s.attendanceRepo.FindByStaffAndDate(ctx, req.StaffID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	status := attendance.StatusOnTime
	if req.ShiftID != nil {
		ws, err := s.shiftForCheckIn(ctx, *req.ShiftID, req.StaffID, today)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		status = attendance.CheckInStatus(ws.StartTime.On(today), now, s.grace)
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.AttendanceLog{
		StaffID:        req.StaffID,
		ShiftID:        req.ShiftID,
		AttendanceDate: today,
		CheckIn:        now,
		Status:         status,
		Notes:          req.Notes,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == staffDayConstraint {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record check-in: %w", err)
	}

	s.logger.Info("check-in recorded",
		"attendance_id", created.ID,
		"staff_id", created.StaffID,
		"status", created.Status,
		"check_in", now.Format(time.RFC3339),
	)
	return attendance.ToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.clock.Now()
	today := clock.Today(now)

	log, err := s.attendanceRepo.FindByStaffAndDate(ctx, req.StaffID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	if log == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoCheckIn
	}
	if log.IsCheckedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if !now.After(log.CheckIn) {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidCheckOutTime
	}

	var shiftEnd *time.Time
	if log.ShiftID != nil {
		ws, err := s.shiftRepo.GetByID(ctx, *log.ShiftID)
		switch {
		case err == nil:
			end := ws.EndTime.On(today)
			shiftEnd = &end
		case errors.Is(err, shift.ErrShiftNotFound):
			// shift removed since check-in, nothing to compare against
		default:
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to load shift for check-out: %w", err)
		}
	}

	hours := attendance.CalculateWorkHours(log.CheckIn, now)
	previous := log.Status
	log.CheckOut = &now
	log.WorkHours = &hours
	log.Status = attendance.CheckOutStatus(log.Status, shiftEnd, now, s.grace)
	if req.Notes != nil {
		log.Notes = req.Notes
	}

	updated, err := s.attendanceRepo.RecordCheckOut(ctx, *log)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record check-out: %w", err)
	}

	s.logger.Info("check-out recorded",
		"attendance_id", updated.ID,
		"staff_id", updated.StaffID,
		"work_hours", hours.String(),
		"status", updated.Status,
		"previous_status", previous,
	)
	return attendance.ToResponse(updated), nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, staffID int64) (attendance.AttendanceResponse, error) {
	log, err := s.attendanceRepo.FindByStaffAndDate(ctx, staffID, clock.Today(s.clock.Now()))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	if log == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}
	return attendance.ToResponse(*log), nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	if !validator.IsValidUUID(id) {
		return attendance.AttendanceResponse{}, validator.ValidationErrors{{Field: "id", Message: "id must be a valid UUID"}}
	}
	log, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(log), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	logs, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	records := make([]attendance.AttendanceResponse, 0, len(logs))
	for _, l := range logs {
		records = append(records, attendance.ToResponse(l))
	}
	return attendance.ListAttendanceResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Records:    records,
	}, nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var status *attendance.Status
	if req.Status != nil {
		st := attendance.Status(*req.Status)
		status = &st
	}

	updated, err := s.attendanceRepo.UpdateStatusNotes(ctx, req.ID, status, req.Notes)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	s.logger.Info("attendance corrected",
		"attendance_id", updated.ID,
		"staff_id", updated.StaffID,
		"status", updated.Status,
		"notes_changed", req.Notes != nil,
	)
	return attendance.ToResponse(updated), nil
}

func (s *AttendanceServiceImpl) shiftForCheckIn(ctx context.Context, shiftID string, staffID int64, today time.Time) (shift.WorkShift, error) {
	ws, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return shift.WorkShift{}, err
	}
	if ws.StaffID != staffID {
		return shift.WorkShift{}, attendance.ErrShiftNotAssigned
	}
	if !ws.Status.IsActive() {
		return shift.WorkShift{}, attendance.ErrShiftNotActive
	}
	if ws.ShiftDate.Format(shift.DateLayout) != today.Format(shift.DateLayout) {
		return shift.WorkShift{}, attendance.ErrShiftNotToday
	}
	return ws, nil
}
