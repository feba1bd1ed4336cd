package http

import (
	"net/http"

	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/homestay-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/homestay-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn records the caller's arrival for today.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.StaffIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing staff identity")
		return
	}

	var req attendance.CheckInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "INVALID_REQUEST", "Invalid request format")
		return
	}
	req.StaffID = staffID

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Created(w, "Check-in successful", result)
}

// CheckOut closes the caller's attendance record for today.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.StaffIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing staff identity")
		return
	}

	var req attendance.CheckOutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "INVALID_REQUEST", "Invalid request format")
		return
	}
	req.StaffID = staffID

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out successful", result)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.StaffIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing staff identity")
		return
	}

	result, err := h.attendanceService.GetToday(r.Context(), staffID)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var errs validator.ValidationErrors

	filter := attendance.AttendanceFilter{
		StaffID:  optionalIDQuery(q, "staff_id", &errs),
		DateFrom: optionalQuery(q, "date_from"),
		DateTo:   optionalQuery(q, "date_to"),
		Status:   optionalQuery(q, "status"),
	}
	filter.Page, filter.Limit = pagination(q)

	if len(errs) > 0 {
		response.HandleError(w, r, errs)
		return
	}

	result, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMeta(w, result.Records, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetAttendance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateAttendanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "INVALID_REQUEST", "Invalid request format")
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.UpdateAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated", result)
}
