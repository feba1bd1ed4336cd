package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/clock"
)

const MarkMissedShiftsJob = "mark_missed_shifts"

type ShiftJobs struct {
	shiftService shift.ShiftService
	clock        clock.Clock
}

func NewShiftJobs(shiftService shift.ShiftService, clk clock.Clock) *ShiftJobs {
	return &ShiftJobs{
		shiftService: shiftService,
		clock:        clk,
	}
}

func (j *ShiftJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(MarkMissedShiftsJob, interval, j.MarkMissedShifts)
}

// MarkMissedShifts flips scheduled shifts dated before today with no check-in to missed.
func (j *ShiftJobs) MarkMissedShifts(ctx context.Context) error {
	today := clock.Today(j.clock.Now())

	if _, err := j.shiftService.MarkOverdueMissed(ctx, today); err != nil {
		return fmt.Errorf("mark overdue shifts missed: %w", err)
	}
	return nil
}
