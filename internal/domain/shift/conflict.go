package shift

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share any minute.
// Touching bounds do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd ClockTime) bool {
	return aStart < bEnd && bStart < aEnd
}

// FilterConflicts returns every active shift in existing that overlaps
// [start, end), skipping excludeID. Callers pass shifts of a single staff
// member and date.
func FilterConflicts(existing []WorkShift, start, end ClockTime, excludeID string) []WorkShift {
	conflicts := []WorkShift{}
	for _, s := range existing {
		if excludeID != "" && s.ID == excludeID {
			continue
		}
		if !s.Status.IsActive() {
			continue
		}
		if Overlaps(s.StartTime, s.EndTime, start, end) {
			conflicts = append(conflicts, s)
		}
	}
	return conflicts
}
