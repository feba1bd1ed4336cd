package attendance

import "context"

type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)
	GetToday(ctx context.Context, staffID int64) (AttendanceResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
}
