package shift

import (
	"context"
	"time"
)

// ConflictChecker finds active shifts overlapping a candidate interval.
type ConflictChecker interface {
	FindConflicts(ctx context.Context, staffID int64, date time.Time, start, end ClockTime, excludeID string) ([]WorkShift, error)
}

type ShiftService interface {
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	AssignShift(ctx context.Context, staffID int64, req CreateShiftRequest) (ShiftResponse, error)
	GetShift(ctx context.Context, id string) (ShiftResponse, error)
	ListShifts(ctx context.Context, filter ShiftFilter) (ListShiftResponse, error)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	DeleteShift(ctx context.Context, id string) error

	MarkCompleted(ctx context.Context, id string) (ShiftResponse, error)
	MarkMissed(ctx context.Context, id string) (ShiftResponse, error)
	CancelShift(ctx context.Context, id string) (ShiftResponse, error)

	CheckConflicts(ctx context.Context, req ConflictCheckRequest) (ConflictCheckResponse, error)
	MarkOverdueMissed(ctx context.Context, today time.Time) (int, error)
}
