package report

import "context"

type ReportService interface {
	GenerateAttendanceReport(ctx context.Context, req AttendanceReportRequest) (AttendanceReport, error)
}
