package http

import (
	"context"
	"time"

	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/shift"
)

type stubShiftService struct {
	createFn    func(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error)
	assignFn    func(ctx context.Context, staffID int64, req shift.CreateShiftRequest) (shift.ShiftResponse, error)
	getFn       func(ctx context.Context, id string) (shift.ShiftResponse, error)
	listFn      func(ctx context.Context, filter shift.ShiftFilter) (shift.ListShiftResponse, error)
	updateFn    func(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error)
	deleteFn    func(ctx context.Context, id string) error
	transitions []string
	transErr    error
	conflictsFn func(ctx context.Context, req shift.ConflictCheckRequest) (shift.ConflictCheckResponse, error)
}

func (s *stubShiftService) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	return s.createFn(ctx, req)
}

func (s *stubShiftService) AssignShift(ctx context.Context, staffID int64, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	return s.assignFn(ctx, staffID, req)
}

func (s *stubShiftService) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	return s.getFn(ctx, id)
}

func (s *stubShiftService) ListShifts(ctx context.Context, filter shift.ShiftFilter) (shift.ListShiftResponse, error) {
	return s.listFn(ctx, filter)
}

func (s *stubShiftService) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	return s.updateFn(ctx, req)
}

func (s *stubShiftService) DeleteShift(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubShiftService) MarkCompleted(_ context.Context, id string) (shift.ShiftResponse, error) {
	s.transitions = append(s.transitions, "completed:"+id)
	return shift.ShiftResponse{ID: id, Status: "completed"}, s.transErr
}

func (s *stubShiftService) MarkMissed(_ context.Context, id string) (shift.ShiftResponse, error) {
	s.transitions = append(s.transitions, "missed:"+id)
	return shift.ShiftResponse{ID: id, Status: "missed"}, s.transErr
}

func (s *stubShiftService) CancelShift(_ context.Context, id string) (shift.ShiftResponse, error) {
	s.transitions = append(s.transitions, "cancelled:"+id)
	return shift.ShiftResponse{ID: id, Status: "cancelled"}, s.transErr
}

func (s *stubShiftService) CheckConflicts(ctx context.Context, req shift.ConflictCheckRequest) (shift.ConflictCheckResponse, error) {
	return s.conflictsFn(ctx, req)
}

func (s *stubShiftService) MarkOverdueMissed(context.Context, time.Time) (int, error) {
	return 0, nil
}

type stubAttendanceService struct {
	checkInFn  func(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error)
	checkOutFn func(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error)
	todayFn    func(ctx context.Context, staffID int64) (attendance.AttendanceResponse, error)
	listFn     func(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error)
}

func (s *stubAttendanceService) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	return s.checkInFn(ctx, req)
}

func (s *stubAttendanceService) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	return s.checkOutFn(ctx, req)
}

func (s *stubAttendanceService) GetToday(ctx context.Context, staffID int64) (attendance.AttendanceResponse, error) {
	return s.todayFn(ctx, staffID)
}

func (s *stubAttendanceService) GetAttendance(context.Context, string) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
}

func (s *stubAttendanceService) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return s.listFn(ctx, filter)
}

func (s *stubAttendanceService) UpdateAttendance(context.Context, attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

type stubReportService struct {
	got report.AttendanceReportRequest
	err error
}

func (s *stubReportService) GenerateAttendanceReport(_ context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	s.got = req
	if s.err != nil {
		return report.AttendanceReport{}, s.err
	}
	return report.AttendanceReport{DateFrom: req.DateFrom, DateTo: req.DateTo}, nil
}
