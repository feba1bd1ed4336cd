package staff

import "context"

// RequireActive loads the profile and fails with ErrStaffInactive when the
// member may not be scheduled or check in.
func RequireActive(ctx context.Context, repo StaffRepository, id int64) (StaffProfile, error) {
	profile, err := repo.GetByID(ctx, id)
	if err != nil {
		return StaffProfile{}, err
	}
	if !profile.IsActive {
		return StaffProfile{}, ErrStaffInactive
	}
	return profile, nil
}
