package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/clock"
)

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
	clock      clock.Clock
	logger     *slog.Logger
}

func NewReportService(reportRepo report.ReportRepository, clk clock.Clock, logger *slog.Logger) report.ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportServiceImpl{
		reportRepo: reportRepo,
		clock:      clk,
		logger:     logger.With("component", "report_service"),
	}
}

// GenerateAttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateAttendanceReport(ctx context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	if err := req.Validate(); err != nil {
		return report.AttendanceReport{}, err
	}

	from, to := req.Range()
	logs, err := s.reportRepo.FindAttendanceInRange(ctx, from, to, req.Department)
	if err != nil {
		return report.AttendanceReport{}, fmt.Errorf("failed to get attendance data: %w", err)
	}

	agg := Aggregate(logs)
	s.logger.Debug("attendance report generated",
		"date_from", req.DateFrom,
		"date_to", req.DateTo,
		"records", agg.Summary.TotalRecords,
		"staff", len(agg.Staff),
	)

	return report.AttendanceReport{
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		Department:  req.Department,
		GeneratedAt: s.clock.Now().Format(time.RFC3339),
		Summary:     agg.Summary,
		Staff:       agg.Staff,
		Records:     agg.Records,
	}, nil
}
