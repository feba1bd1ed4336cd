package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	overlapConstraint     = "no_overlapping_shifts"
	maxTransitionAttempts = 3
)

type ShiftServiceImpl struct {
	tx        database.Transactor
	shiftRepo shift.ShiftRepository
	staffRepo staff.StaffRepository
	checker   shift.ConflictChecker
	locker    lock.Locker
	logger    *slog.Logger
}

func NewShiftService(
	tx database.Transactor,
	shiftRepo shift.ShiftRepository,
	staffRepo staff.StaffRepository,
	locker lock.Locker,
	logger *slog.Logger,
) shift.ShiftService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShiftServiceImpl{
		tx:        tx,
		shiftRepo: shiftRepo,
		staffRepo: staffRepo,
		checker:   NewConflictChecker(shiftRepo),
		locker:    locker,
		logger:    logger.With("component", "shift_service"),
	}
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}
	if _, err := staff.RequireActive(ctx, s.staffRepo, req.StaffID); err != nil {
		return shift.ShiftResponse{}, err
	}

	date, start, end := req.Interval()
	candidate := shift.WorkShift{
		StaffID:   req.StaffID,
		ShiftDate: date,
		ShiftType: shift.ShiftType(req.ShiftType),
		StartTime: start,
		EndTime:   end,
		Status:    shift.StatusScheduled,
		Notes:     req.Notes,
	}

	var created shift.WorkShift
	err := s.withStaffLock(ctx, req.StaffID, func(ctx context.Context) error {
		if err := s.ensureNoConflicts(ctx, candidate, ""); err != nil {
			return err
		}
		var err error
		created, err = s.shiftRepo.Create(ctx, candidate)
		if err != nil {
			return fmt.Errorf("failed to create shift: %w", err)
		}
		return nil
	})
	if err != nil {
		return shift.ShiftResponse{}, s.resolveConflict(ctx, err, candidate, "")
	}

	s.logger.Info("shift created",
		"shift_id", created.ID,
		"staff_id", created.StaffID,
		"shift_date", created.ShiftDate.Format(shift.DateLayout),
		"start_time", created.StartTime.String(),
		"end_time", created.EndTime.String(),
	)
	return shift.ToResponse(created), nil
}

// AssignShift implements shift.ShiftService.
func (s *ShiftServiceImpl) AssignShift(ctx context.Context, staffID int64, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	req.StaffID = staffID
	return s.CreateShift(ctx, req)
}

// GetShift implements shift.ShiftService.
func (s *ShiftServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	if !validator.IsValidUUID(id) {
		return shift.ShiftResponse{}, shift.ErrInvalidShiftID
	}
	ws, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToResponse(ws), nil
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context, filter shift.ShiftFilter) (shift.ListShiftResponse, error) {
	if err := filter.Validate(); err != nil {
		return shift.ListShiftResponse{}, err
	}

	shifts, total, err := s.shiftRepo.List(ctx, filter)
	if err != nil {
		return shift.ListShiftResponse{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	return shift.ListShiftResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Shifts:     shift.ToResponses(shifts),
	}, nil
}

// UpdateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	if !req.ChangesSchedule() {
		saved, err := s.shiftRepo.Update(ctx, req.ID, req.Changes())
		if err != nil {
			return shift.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
		}
		s.logger.Info("shift details updated", "shift_id", saved.ID, "staff_id", saved.StaffID)
		return shift.ToResponse(saved), nil
	}

	current, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	var (
		saved     shift.WorkShift
		candidate shift.WorkShift
	)
	err = s.withStaffLock(ctx, current.StaffID, func(ctx context.Context) error {
		// reload under the lock so the merge starts from committed state
		latest, err := s.shiftRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if latest.Status == shift.StatusCompleted {
			return shift.ErrCompletedShiftReschedule
		}
		candidate, err = req.Apply(latest)
		if err != nil {
			return err
		}
		if err := s.ensureNoConflicts(ctx, candidate, candidate.ID); err != nil {
			return err
		}
		saved, err = s.shiftRepo.Update(ctx, req.ID, req.Changes())
		if err != nil {
			return fmt.Errorf("failed to update shift: %w", err)
		}
		return nil
	})
	if err != nil {
		return shift.ShiftResponse{}, s.resolveConflict(ctx, err, candidate, req.ID)
	}

	s.logger.Info("shift rescheduled",
		"shift_id", saved.ID,
		"staff_id", saved.StaffID,
		"shift_date", saved.ShiftDate.Format(shift.DateLayout),
		"start_time", saved.StartTime.String(),
		"end_time", saved.EndTime.String(),
	)
	return shift.ToResponse(saved), nil
}

// DeleteShift implements shift.ShiftService.
func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return shift.ErrInvalidShiftID
	}
	current, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := current.CanDelete(); err != nil {
		s.logger.Warn("refused to delete shift", "shift_id", id, "status", current.Status)
		return err
	}
	if err := s.shiftRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("shift deleted", "shift_id", id, "staff_id", current.StaffID)
	return nil
}

// MarkCompleted implements shift.ShiftService.
func (s *ShiftServiceImpl) MarkCompleted(ctx context.Context, id string) (shift.ShiftResponse, error) {
	return s.transition(ctx, id, shift.StatusCompleted)
}

// MarkMissed implements shift.ShiftService.
func (s *ShiftServiceImpl) MarkMissed(ctx context.Context, id string) (shift.ShiftResponse, error) {
	return s.transition(ctx, id, shift.StatusMissed)
}

// CancelShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CancelShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	return s.transition(ctx, id, shift.StatusCancelled)
}

// CheckConflicts implements shift.ShiftService.
func (s *ShiftServiceImpl) CheckConflicts(ctx context.Context, req shift.ConflictCheckRequest) (shift.ConflictCheckResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ConflictCheckResponse{}, err
	}

	date, _ := time.Parse(shift.DateLayout, req.ShiftDate)
	start, _ := shift.ParseClockTime(req.StartTime)
	end, _ := shift.ParseClockTime(req.EndTime)
	excludeID := ""
	if req.ExcludeShiftID != nil {
		excludeID = *req.ExcludeShiftID
	}

	conflicts, err := s.checker.FindConflicts(ctx, req.StaffID, date, start, end, excludeID)
	if err != nil {
		return shift.ConflictCheckResponse{}, err
	}
	return shift.ConflictCheckResponse{
		HasConflict: len(conflicts) > 0,
		Conflicts:   shift.ToResponses(conflicts),
	}, nil
}

// MarkOverdueMissed implements shift.ShiftService.
func (s *ShiftServiceImpl) MarkOverdueMissed(ctx context.Context, today time.Time) (int, error) {
	ids, err := s.shiftRepo.MarkOverdueMissed(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue shifts as missed: %w", err)
	}
	if len(ids) > 0 {
		s.logger.Info("overdue shifts marked as missed", "count", len(ids), "before", today.Format(shift.DateLayout))
	}
	return len(ids), nil
}

// transition re-reads and retries when the guarded write finds the status
// moved underneath it, so the rule is always checked against the stored row.
func (s *ShiftServiceImpl) transition(ctx context.Context, id string, target shift.Status) (shift.ShiftResponse, error) {
	if !validator.IsValidUUID(id) {
		return shift.ShiftResponse{}, shift.ErrInvalidShiftID
	}
	for attempt := 0; ; attempt++ {
		current, err := s.shiftRepo.GetByID(ctx, id)
		if err != nil {
			return shift.ShiftResponse{}, err
		}
		if err := current.TransitionTo(target); err != nil {
			s.logger.Warn("rejected shift status change", "shift_id", id, "from", current.Status, "to", target)
			return shift.ShiftResponse{}, err
		}
		updated, err := s.shiftRepo.UpdateStatus(ctx, id, current.Status, target)
		if errors.Is(err, shift.ErrShiftStatusChanged) && attempt < maxTransitionAttempts-1 {
			s.logger.Debug("shift status moved during change, retrying", "shift_id", id, "from", current.Status, "to", target)
			continue
		}
		if err != nil {
			return shift.ShiftResponse{}, err
		}
		s.logger.Info("shift status changed", "shift_id", id, "from", current.Status, "to", target)
		return shift.ToResponse(updated), nil
	}
}

func (s *ShiftServiceImpl) ensureNoConflicts(ctx context.Context, candidate shift.WorkShift, excludeID string) error {
	conflicts, err := s.checker.FindConflicts(ctx, candidate.StaffID, candidate.ShiftDate, candidate.StartTime, candidate.EndTime, excludeID)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		s.logger.Warn("shift conflict rejected",
			"staff_id", candidate.StaffID,
			"shift_date", candidate.ShiftDate.Format(shift.DateLayout),
			"start_time", candidate.StartTime.String(),
			"end_time", candidate.EndTime.String(),
			"conflicts", len(conflicts),
		)
		return shift.NewConflictError(conflicts)
	}
	return nil
}

// withStaffLock serializes check-then-write for one staff member and runs
// fn in a transaction.
func (s *ShiftServiceImpl) withStaffLock(ctx context.Context, staffID int64, fn func(ctx context.Context) error) error {
	release, err := s.locker.Acquire(ctx, "shift:staff:"+strconv.FormatInt(staffID, 10))
	if err != nil {
		return fmt.Errorf("failed to acquire shift lock for staff %d: %w", staffID, err)
	}
	defer release()
	return s.tx.WithinTransaction(ctx, fn)
}

// resolveConflict turns an exclusion constraint violation into a
// ConflictError listing the shifts that won the race.
func (s *ShiftServiceImpl) resolveConflict(ctx context.Context, err error, candidate shift.WorkShift, excludeID string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23P01" || pgErr.ConstraintName != overlapConstraint {
		return err
	}

	s.logger.Warn("overlap caught by storage constraint", "staff_id", candidate.StaffID)
	conflicts, qErr := s.checker.FindConflicts(ctx, candidate.StaffID, candidate.ShiftDate, candidate.StartTime, candidate.EndTime, excludeID)
	if qErr != nil {
		return shift.NewConflictError(nil)
	}
	return shift.NewConflictError(conflicts)
}
