package shift

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/staff"
	"github.com/google/uuid"
)

type fakeShiftRepo struct {
	mu     sync.Mutex
	shifts map[string]shift.WorkShift
	order  []string

	// racer is stored and createErr returned on the next Create, as if a
	// concurrent writer committed first.
	racer     *shift.WorkShift
	createErr error
	findErr   error
	findCalls int

	// beforeWrite runs once ahead of the next Update or UpdateStatus, as if
	// another request committed between the caller's read and its write.
	beforeWrite func()
}

func (f *fakeShiftRepo) interleave() {
	f.mu.Lock()
	hook := f.beforeWrite
	f.beforeWrite = nil
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[string]shift.WorkShift)}
}

func (f *fakeShiftRepo) insert(s shift.WorkShift) shift.WorkShift {
	if s.ID == "" {
		s.ID = uuid.Must(uuid.NewV7()).String()
	}
	now := time.Now()
	s.CreatedAt, s.UpdatedAt = now, now
	f.shifts[s.ID] = s
	f.order = append(f.order, s.ID)
	return s
}

func (f *fakeShiftRepo) seed(s shift.WorkShift) shift.WorkShift {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(s)
}

func (f *fakeShiftRepo) Create(ctx context.Context, s shift.WorkShift) (shift.WorkShift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		if f.racer != nil {
			f.insert(*f.racer)
			f.racer = nil
		}
		err := f.createErr
		f.createErr = nil
		return shift.WorkShift{}, err
	}
	return f.insert(s), nil
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id string) (shift.WorkShift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.shifts[id]
	if !ok {
		return shift.WorkShift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (f *fakeShiftRepo) FindByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]shift.WorkShift, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []shift.WorkShift
	for _, id := range f.order {
		s, ok := f.shifts[id]
		if !ok {
			continue
		}
		if s.StaffID == staffID && s.ShiftDate.Equal(date) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (f *fakeShiftRepo) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.WorkShift, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []shift.WorkShift
	for _, id := range f.order {
		s, ok := f.shifts[id]
		if !ok {
			continue
		}
		if filter.StaffID != nil && s.StaffID != *filter.StaffID {
			continue
		}
		if filter.Status != nil && string(s.Status) != *filter.Status {
			continue
		}
		all = append(all, s)
	}
	start := (filter.Page - 1) * filter.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (f *fakeShiftRepo) Update(ctx context.Context, id string, changes shift.ShiftChanges) (shift.WorkShift, error) {
	f.interleave()
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.shifts[id]
	if !ok {
		return shift.WorkShift{}, shift.ErrShiftNotFound
	}
	if changes.ChangesSchedule() && s.Status == shift.StatusCompleted {
		return shift.WorkShift{}, shift.ErrCompletedShiftReschedule
	}
	if changes.ShiftDate != nil {
		s.ShiftDate = *changes.ShiftDate
	}
	if changes.ShiftType != nil {
		s.ShiftType = *changes.ShiftType
	}
	if changes.StartTime != nil {
		s.StartTime = *changes.StartTime
	}
	if changes.EndTime != nil {
		s.EndTime = *changes.EndTime
	}
	if changes.Notes != nil {
		s.Notes = changes.Notes
	}
	s.UpdatedAt = time.Now()
	f.shifts[id] = s
	return s, nil
}

func (f *fakeShiftRepo) UpdateStatus(ctx context.Context, id string, from, to shift.Status) (shift.WorkShift, error) {
	f.interleave()
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.shifts[id]
	if !ok {
		return shift.WorkShift{}, shift.ErrShiftNotFound
	}
	if s.Status != from {
		return shift.WorkShift{}, shift.ErrShiftStatusChanged
	}
	s.Status = to
	f.shifts[id] = s
	return s, nil
}

func (f *fakeShiftRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.shifts[id]; !ok {
		return shift.ErrShiftNotFound
	}
	delete(f.shifts, id)
	return nil
}

func (f *fakeShiftRepo) MarkOverdueMissed(ctx context.Context, before time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, id := range f.order {
		s, ok := f.shifts[id]
		if ok && s.Status == shift.StatusScheduled && s.ShiftDate.Before(before) {
			s.Status = shift.StatusMissed
			f.shifts[id] = s
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeStaffRepo map[int64]staff.StaffProfile

func (f fakeStaffRepo) GetByID(ctx context.Context, id int64) (staff.StaffProfile, error) {
	p, ok := f[id]
	if !ok {
		return staff.StaffProfile{}, staff.ErrStaffNotFound
	}
	return p, nil
}

type passthroughTx struct {
	calls int
}

func (p *passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}
