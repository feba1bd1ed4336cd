package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/homestay-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type staffRepositoryImpl struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepositoryImpl{db: db}
}

// GetByID implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByID(ctx context.Context, id int64) (staff.StaffProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, department, position, is_active
		FROM staff_profiles
		WHERE id = $1
	`
	var p staff.StaffProfile
	err := q.QueryRow(ctx, query, id).Scan(&p.ID, &p.FullName, &p.Department, &p.Position, &p.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.StaffProfile{}, staff.ErrStaffNotFound
		}
		return staff.StaffProfile{}, fmt.Errorf("failed to get staff profile: %w", err)
	}
	return p, nil
}
