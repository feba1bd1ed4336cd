package http

import (
	"net/http"

	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/homestay-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Attendance(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Attendance implements ReportHandler.
func (h *reportHandlerImpl) Attendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := report.AttendanceReportRequest{
		DateFrom:   q.Get("date_from"),
		DateTo:     q.Get("date_to"),
		Department: optionalQuery(q, "department"),
	}

	result, err := h.reportService.GenerateAttendanceReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, result)
}
