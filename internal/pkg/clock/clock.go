// Package clock supplies the current instant in the business timezone.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// New returns a Clock reading the system time converted to loc.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Fixed always reports the same instant. Set T to move it.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time {
	return f.T
}

// Today truncates t to midnight in t's own location.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
