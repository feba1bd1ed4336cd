package staff

import "errors"

var (
	ErrStaffNotFound = errors.New("staff member not found")
	ErrStaffInactive = errors.New("staff member is not active")
)
