package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
)

type DriverRepository struct {
	db *sql.DB
}

func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) GetDriverProfile(ctx context.Context, userID uuid.UUID) (*domain.DriverProfile, error) {
	query := `
	SELECT id, vehicle_model, vehicle_number, vehicle_seats, driver_verified
	FROM users
	WHERE id = $1 AND role = 'driver'
	`

	var profile domain.DriverProfile
	var model, number sql.NullString
	var seats sql.NullInt64

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&model,
		&number,
		&seats,
		&profile.Verified,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDriverNotFound
		}
		return nil, err
	}

	profile.VehicleModel = model.String
	profile.VehicleNumber = number.String
	profile.VehicleSeats = int(seats.Int64)

	return &profile, nil
}
