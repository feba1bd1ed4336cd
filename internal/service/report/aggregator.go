package report

import (
	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/report"
	"github.com/shopspring/decimal"
)

// Aggregation is the summary half of an attendance report.
type Aggregation struct {
	Summary report.AttendanceSummary
	Staff   []report.StaffAttendanceGroup
	Records []attendance.AttendanceResponse
}

// Aggregate counts statuses, sums work hours and groups records by staff id.
// Groups appear in order of first record; records keep the input order.
func Aggregate(logs []attendance.AttendanceLog) Aggregation {
	agg := Aggregation{
		Summary: report.AttendanceSummary{TotalWorkHours: decimal.Zero},
		Staff:   []report.StaffAttendanceGroup{},
		Records: make([]attendance.AttendanceResponse, 0, len(logs)),
	}
	index := make(map[int64]int)

	for _, l := range logs {
		rec := attendance.ToResponse(l)
		agg.Records = append(agg.Records, rec)
		addToSummary(&agg.Summary, l)

		i, ok := index[l.StaffID]
		if !ok {
			i = len(agg.Staff)
			index[l.StaffID] = i
			agg.Staff = append(agg.Staff, report.StaffAttendanceGroup{
				StaffID:    l.StaffID,
				StaffName:  l.StaffName,
				Department: l.Department,
				Summary:    report.AttendanceSummary{TotalWorkHours: decimal.Zero},
				Records:    []attendance.AttendanceResponse{},
			})
		}
		group := &agg.Staff[i]
		group.Records = append(group.Records, rec)
		addToSummary(&group.Summary, l)
	}
	return agg
}

func addToSummary(s *report.AttendanceSummary, l attendance.AttendanceLog) {
	s.TotalRecords++
	switch l.Status {
	case attendance.StatusOnTime:
		s.OnTime++
	case attendance.StatusLate:
		s.Late++
	case attendance.StatusEarlyLeave:
		s.EarlyLeave++
	case attendance.StatusAbsent:
		s.Absent++
	}
	if l.WorkHours != nil {
		s.TotalWorkHours = s.TotalWorkHours.Add(*l.WorkHours)
	}
}
