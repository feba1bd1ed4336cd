package shift

import "time"

const DateLayout = "2006-01-02"

type WorkShift struct {
	ID        string
	StaffID   int64
	ShiftDate time.Time
	ShiftType ShiftType
	StartTime ClockTime
	EndTime   ClockTime
	Status    Status
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ShiftType string

const (
	ShiftTypeMorning   ShiftType = "morning"
	ShiftTypeAfternoon ShiftType = "afternoon"
	ShiftTypeNight     ShiftType = "night"
	ShiftTypeFullDay   ShiftType = "full_day"
)

var ShiftTypeValues = []string{
	string(ShiftTypeMorning),
	string(ShiftTypeAfternoon),
	string(ShiftTypeNight),
	string(ShiftTypeFullDay),
}

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
	StatusCancelled Status = "cancelled"
)

var StatusValues = []string{
	string(StatusScheduled),
	string(StatusCompleted),
	string(StatusMissed),
	string(StatusCancelled),
}

// IsActive reports whether the status takes part in conflict detection.
func (s Status) IsActive() bool {
	return s == StatusScheduled || s == StatusCompleted
}

// Start and End return the shift bounds as instants on the shift date.
func (s WorkShift) Start() time.Time { return s.StartTime.On(s.ShiftDate) }
func (s WorkShift) End() time.Time   { return s.EndTime.On(s.ShiftDate) }

// TransitionTo checks that the shift may move to the target status.
func (s WorkShift) TransitionTo(target Status) error {
	switch target {
	case StatusCompleted:
		if s.Status != StatusScheduled {
			return ErrShiftNotScheduled
		}
	case StatusMissed:
		switch s.Status {
		case StatusCompleted:
			return ErrCompletedShiftMissed
		case StatusMissed:
			return ErrShiftAlreadyMissed
		}
	case StatusCancelled:
		switch s.Status {
		case StatusCompleted:
			return ErrCompletedShiftCancel
		case StatusCancelled:
			return ErrShiftAlreadyCancelled
		}
	default:
		return ErrInvalidStatus
	}
	return nil
}

func (s WorkShift) CanDelete() error {
	if s.Status == StatusCompleted {
		return ErrCompletedShiftDelete
	}
	return nil
}
