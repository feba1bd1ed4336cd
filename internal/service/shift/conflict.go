package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/shift"
)

type ConflictCheckerImpl struct {
	shiftRepo shift.ShiftRepository
}

func NewConflictChecker(shiftRepo shift.ShiftRepository) shift.ConflictChecker {
	return &ConflictCheckerImpl{shiftRepo: shiftRepo}
}

// FindConflicts implements shift.ConflictChecker.
func (c *ConflictCheckerImpl) FindConflicts(ctx context.Context, staffID int64, date time.Time, start, end shift.ClockTime, excludeID string) ([]shift.WorkShift, error) {
	existing, err := c.shiftRepo.FindByStaffAndDate(ctx, staffID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load shifts for staff %d on %s: %w", staffID, date.Format(shift.DateLayout), err)
	}
	return shift.FilterConflicts(existing, start, end, excludeID), nil
}
