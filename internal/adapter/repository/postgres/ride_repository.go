package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
	"github.com/srgjo27/carpool_booking/internal/core/ports"
)

type RideRepository struct {
	db *sql.DB
}

func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{db: db}
}

func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	waypoints, err := json.Marshal(ride.Waypoints)
	if err != nil {
		return fmt.Errorf("failed to encode waypoints: %w", err)
	}

	now := time.Now()
	ride.Version = 1
	ride.CreatedAt = now
	ride.UpdatedAt = now

	query := `
	INSERT INTO rides (id, driver_id, origin_text, origin_lat, origin_lng, destination_text, destination_lat, destination_lng,
		waypoints, starts_at, total_seats, remaining_seats, price_per_seat, status, notes, version, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err = r.db.ExecContext(ctx, query,
		ride.ID, ride.DriverID,
		ride.Origin.Text, nullFloat(ride.Origin.Lat), nullFloat(ride.Origin.Lng),
		ride.Destination.Text, nullFloat(ride.Destination.Lat), nullFloat(ride.Destination.Lng),
		waypoints, ride.StartsAt, ride.TotalSeats, ride.RemainingSeats, ride.PricePerSeat,
		ride.Status, ride.Notes, ride.Version, ride.CreatedAt, ride.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ride: %w", err)
	}

	return nil
}

func (r *RideRepository) GetByID(ctx context.Context, rideID uuid.UUID) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(r.db.QueryRowContext(ctx, query, rideID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRideNotFound
		}
		return nil, err
	}

	return ride, nil
}

func (r *RideRepository) Search(ctx context.Context, filter domain.RideFilter) ([]domain.Ride, error) {
	where, args := searchClause(filter)
	query := `SELECT ` + rideColumns + ` FROM rides WHERE ` + where + ` ORDER BY starts_at ASC`

	return r.queryRides(ctx, query, args...)
}

func (r *RideRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE driver_id = $1 ORDER BY starts_at ASC`

	return r.queryRides(ctx, query, driverID)
}

func (r *RideRepository) queryRides(ctx context.Context, query string, args ...any) ([]domain.Ride, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var rides []domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}

		rides = append(rides, *ride)
	}

	return rides, rows.Err()
}

func (r *RideRepository) Update(ctx context.Context, rideID uuid.UUID, fn ports.RideMutation) (*domain.Ride, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer tx.Rollback()

	current, err := lockRide(ctx, tx, rideID)
	if err != nil {
		return nil, err
	}

	next := *current
	if err := fn(&next); err != nil {
		if errors.Is(err, ports.ErrSkipWrite) {
			return current, nil
		}
		return nil, err
	}
	if err := next.CheckInvariant(); err != nil {
		return nil, err
	}

	if err := writeRide(ctx, tx, &next, current.Version); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &next, nil
}

func lockRide(ctx context.Context, tx *sql.Tx, rideID uuid.UUID) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1 FOR UPDATE`

	ride, err := scanRide(tx.QueryRowContext(ctx, query, rideID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRideNotFound
		}
		return nil, err
	}

	return ride, nil
}

// writeRide persists the inventory fields if the row still carries the
// version that was read.
func writeRide(ctx context.Context, tx *sql.Tx, ride *domain.Ride, expectedVersion int) error {
	query := `
	UPDATE rides
	SET remaining_seats = $1,
		status = $2,
		version = version + 1,
		updated_at = $3
	WHERE id = $4 AND version = $5
	`

	now := time.Now()
	result, err := tx.ExecContext(ctx, query, ride.RemainingSeats, ride.Status, now, ride.ID, expectedVersion)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ports.ErrVersionConflict
	}

	ride.Version = expectedVersion + 1
	ride.UpdatedAt = now
	return nil
}

func searchClause(filter domain.RideFilter) (string, []any) {
	conds := []string{"status = 'open'"}
	var args []any

	add := func(cond string, values ...any) {
		for _, v := range values {
			args = append(args, v)
			cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(args)), 1)
		}
		conds = append(conds, cond)
	}

	if filter.Origin != "" {
		add(`origin_text ILIKE ?`, "%"+escapeLike(filter.Origin)+"%")
	}
	if filter.Destination != "" {
		add(`destination_text ILIKE ?`, "%"+escapeLike(filter.Destination)+"%")
	}
	if filter.From != nil {
		add(`starts_at >= ?`, *filter.From)
	}
	if filter.To != nil {
		add(`starts_at < ?`, *filter.To)
	}
	if filter.MinSeats > 0 {
		add(`remaining_seats >= ?`, filter.MinSeats)
	}
	if filter.MaxPrice != nil {
		add(`price_per_seat <= ?`, *filter.MaxPrice)
	}
	if filter.Near != nil {
		box := filter.Near.BoundingBox()
		add(`origin_lat BETWEEN ? AND ?`, box.MinLat, box.MaxLat)
		if !box.AnyLng {
			add(`origin_lng BETWEEN ? AND ?`, box.MinLng, box.MaxLng)
		} else {
			conds = append(conds, `origin_lng IS NOT NULL`)
		}
	}

	return strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
