package repository

import (
	"context"
	"database/sql"
	"errors"

	"chargeledger/internal/models"
)

// ErrVehicleNotFound represents missing vehicle rows.
var ErrVehicleNotFound = errors.New("vehicle not found")

// VehicleRepository handles reads of the vehicle master table. Writes happen
// through SessionRepository (upsert-on-start) and the seeder.
type VehicleRepository struct {
	db *sql.DB
}

// NewVehicleRepository returns a repository instance.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `vehicle_no, vehicle_name, phone_no, battery_capacity, last_updated`

func scanVehicle(row interface{ Scan(dest ...any) error }) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := row.Scan(&v.VehicleNo, &v.VehicleName, &v.PhoneNo, &v.BatteryCapacity, &v.LastUpdated); err != nil {
		return nil, err
	}
	return &v, nil
}

// Get fetches a vehicle by its registration number.
func (r *VehicleRepository) Get(ctx context.Context, vehicleNo string) (*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicle_master WHERE vehicle_no = $1 LIMIT 1`
	v, err := scanVehicle(r.db.QueryRowContext(ctx, query, vehicleNo))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

// Search returns vehicles whose registration number or display name contains
// the query, case-insensitively, capped at limit rows.
func (r *VehicleRepository) Search(ctx context.Context, query string, limit int) ([]models.Vehicle, error) {
	if limit <= 0 {
		limit = 10
	}
	stmt := `
		SELECT ` + vehicleColumns + `
		FROM vehicle_master
		WHERE vehicle_no ILIKE '%' || $1 || '%' OR vehicle_name ILIKE '%' || $1 || '%'
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, stmt, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// ExistsByName reports whether a vehicle with the given display name exists.
// Used by the catalog seeder to skip duplicates.
func (r *VehicleRepository) ExistsByName(ctx context.Context, vehicleName string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM vehicle_master WHERE vehicle_name = $1)`,
		vehicleName,
	).Scan(&exists)
	return exists, err
}

// Create inserts a vehicle row. Seeder-only; session starts go through the
// transactional upsert instead.
func (r *VehicleRepository) Create(ctx context.Context, v *models.Vehicle) error {
	const query = `
		INSERT INTO vehicle_master (vehicle_no, vehicle_name, phone_no, battery_capacity, last_updated)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING last_updated
	`
	return r.db.QueryRowContext(ctx, query,
		v.VehicleNo, v.VehicleName, v.PhoneNo, v.BatteryCapacity,
	).Scan(&v.LastUpdated)
}
