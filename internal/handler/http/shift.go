package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/homestay-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type ShiftHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
	MarkMissed(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	CheckConflicts(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService: shiftService,
	}
}

// Create implements ShiftHandler.
func (h *shiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if err := decodeJSON(w, r, &req); err != nil {
		slog.DebugContext(r.Context(), "invalid shift payload", "error", err)
		response.BadRequest(w, "INVALID_REQUEST", "Invalid request format")
		return
	}

	result, err := h.shiftService.CreateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Created(w, "Shift created", result)
}

// Assign creates a shift for the staff member named in the path.
func (h *shiftHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	staffID, ok := validator.ParsePositiveInt64(chi.URLParam(r, "staffID"))
	if !ok {
		response.BadRequest(w, "INVALID_STAFF_ID", "Staff ID must be a positive number")
		return
	}

	var req shift.CreateShiftRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "INVALID_REQUEST", "Invalid request format")
		return
	}

	result, err := h.shiftService.AssignShift(r.Context(), staffID, req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Created(w, "Shift assigned", result)
}

// Get implements ShiftHandler.
func (h *shiftHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.GetShift(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, result)
}

// List implements ShiftHandler.
func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var errs validator.ValidationErrors

	filter := shift.ShiftFilter{
		StaffID:   optionalIDQuery(q, "staff_id", &errs),
		DateFrom:  optionalQuery(q, "date_from"),
		DateTo:    optionalQuery(q, "date_to"),
		Status:    optionalQuery(q, "status"),
		ShiftType: optionalQuery(q, "shift_type"),
	}
	filter.Page, filter.Limit = pagination(q)

	if len(errs) > 0 {
		response.HandleError(w, r, errs)
		return
	}

	result, err := h.shiftService.ListShifts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMeta(w, result.Shifts, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Update implements ShiftHandler.
func (h *shiftHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req shift.UpdateShiftRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "INVALID_REQUEST", "Invalid request format")
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.shiftService.UpdateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated", result)
}

// Delete implements ShiftHandler.
func (h *shiftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.shiftService.DeleteShift(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted", nil)
}

// Complete implements ShiftHandler.
func (h *shiftHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.MarkCompleted(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Shift marked as completed", result)
}

// MarkMissed implements ShiftHandler.
func (h *shiftHandlerImpl) MarkMissed(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.MarkMissed(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Shift marked as missed", result)
}

// Cancel implements ShiftHandler.
func (h *shiftHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.CancelShift(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Shift cancelled", result)
}

// CheckConflicts reports overlapping shifts without writing anything.
func (h *shiftHandlerImpl) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var errs validator.ValidationErrors

	req := shift.ConflictCheckRequest{
		ShiftDate:      q.Get("shift_date"),
		StartTime:      q.Get("start_time"),
		EndTime:        q.Get("end_time"),
		ExcludeShiftID: optionalQuery(q, "exclude_shift_id"),
	}
	if staffID := optionalIDQuery(q, "staff_id", &errs); staffID != nil {
		req.StaffID = *staffID
	}
	if len(errs) > 0 {
		response.HandleError(w, r, errs)
		return
	}

	result, err := h.shiftService.CheckConflicts(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, result)
}
