package staff

import "context"

// StaffRepository reads profiles owned by the staff management module.
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (StaffProfile, error)
}
