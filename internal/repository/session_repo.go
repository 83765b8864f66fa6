package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"chargeledger/internal/models"
)

var (
	// ErrSessionNotFound indicates a missing session row.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionCompleted indicates an attempt to complete a session twice.
	ErrSessionCompleted = errors.New("session already completed")
)

// SessionRepository handles persistence of charging sessions.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository returns a repository instance.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `session_id, vehicle_no, station_name, start_time, end_time,
	soc_start, soc_end, unit_kwh, calculated_cost_rs, price_paid, payment_method, status`

func scanSession(row interface{ Scan(dest ...any) error }) (*models.ChargeSession, error) {
	var s models.ChargeSession
	if err := row.Scan(
		&s.SessionID,
		&s.VehicleNo,
		&s.StationName,
		&s.StartTime,
		&s.EndTime,
		&s.SOCStart,
		&s.SOCEnd,
		&s.UnitKWh,
		&s.CalculatedCostRs,
		&s.PricePaid,
		&s.PaymentMethod,
		&s.Status,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) collect(rows *sql.Rows) ([]models.ChargeSession, error) {
	defer rows.Close()
	var sessions []models.ChargeSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// VehicleUpsert carries the vehicle fields accompanying a session start.
// Nil pointers mean "not supplied, keep the existing value"; battery
// capacity is only ever overwritten by a parsed numeric value.
type VehicleUpsert struct {
	VehicleNo       string
	VehicleName     *string
	PhoneNo         *string
	BatteryCapacity *float64
}

// StartWithVehicle commits the vehicle upsert and the new IN_PROGRESS
// session as a single transaction. Returns the created session and the
// resulting vehicle snapshot.
func (r *SessionRepository) StartWithVehicle(ctx context.Context, upsert VehicleUpsert, stationName string, socStart float64, now time.Time) (*models.ChargeSession, *models.Vehicle, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	const upsertQuery = `
		INSERT INTO vehicle_master (vehicle_no, vehicle_name, phone_no, battery_capacity, last_updated)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), $4, $5)
		ON CONFLICT (vehicle_no) DO UPDATE SET
			vehicle_name = COALESCE($2, vehicle_master.vehicle_name),
			phone_no = COALESCE($3, vehicle_master.phone_no),
			battery_capacity = COALESCE($4, vehicle_master.battery_capacity),
			last_updated = $5
		RETURNING ` + vehicleColumns + `
	`
	vehicle, err := scanVehicle(tx.QueryRowContext(ctx, upsertQuery,
		upsert.VehicleNo,
		upsert.VehicleName,
		upsert.PhoneNo,
		upsert.BatteryCapacity,
		now,
	))
	if err != nil {
		return nil, nil, err
	}

	const insertQuery = `
		INSERT INTO charge_sessions (vehicle_no, station_name, start_time, soc_start, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING session_id
	`
	session := &models.ChargeSession{
		VehicleNo:   upsert.VehicleNo,
		StationName: stationName,
		StartTime:   now,
		SOCStart:    socStart,
		Status:      models.SessionStatusInProgress,
	}
	if err := tx.QueryRowContext(ctx, insertQuery,
		session.VehicleNo,
		session.StationName,
		session.StartTime,
		session.SOCStart,
		session.Status,
	).Scan(&session.SessionID); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return session, vehicle, nil
}

// GetByID fetches a single session.
func (r *SessionRepository) GetByID(ctx context.Context, sessionID int64) (*models.ChargeSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM charge_sessions WHERE session_id = $1 LIMIT 1`
	s, err := scanSession(r.db.QueryRowContext(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}

// Completion carries the end-of-session fields written exactly once.
type Completion struct {
	SOCEnd           float64
	UnitKWh          float64
	PricePaid        float64
	PaymentMethod    string
	CalculatedCostRs float64
	EndTime          time.Time
}

// Complete transitions IN_PROGRESS -> COMPLETED and bumps the owning
// vehicle's last_updated in one transaction. The session row is locked so
// concurrent completions serialize: the second caller observes COMPLETED
// and gets ErrSessionCompleted with no mutation.
func (r *SessionRepository) Complete(ctx context.Context, sessionID int64, c Completion) (*models.ChargeSession, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM charge_sessions WHERE session_id = $1 FOR UPDATE`,
		sessionID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if status == models.SessionStatusCompleted {
		return nil, ErrSessionCompleted
	}

	updateQuery := `
		UPDATE charge_sessions
		SET soc_end = $2,
		    unit_kwh = $3,
		    price_paid = $4,
		    payment_method = $5,
		    calculated_cost_rs = $6,
		    end_time = $7,
		    status = $8
		WHERE session_id = $1
		RETURNING ` + sessionColumns + `
	`
	session, err := scanSession(tx.QueryRowContext(ctx, updateQuery,
		sessionID,
		c.SOCEnd,
		c.UnitKWh,
		c.PricePaid,
		c.PaymentMethod,
		c.CalculatedCostRs,
		c.EndTime,
		models.SessionStatusCompleted,
	))
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE vehicle_master SET last_updated = $2 WHERE vehicle_no = $1`,
		session.VehicleNo, c.EndTime,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return session, nil
}

// ListByVehicle returns all sessions for a vehicle, newest start first.
func (r *SessionRepository) ListByVehicle(ctx context.Context, vehicleNo string) ([]models.ChargeSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM charge_sessions
		WHERE vehicle_no = $1
		ORDER BY start_time DESC
	`
	rows, err := r.db.QueryContext(ctx, query, vehicleNo)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// List returns sessions matching the optional station and status filters,
// newest start first.
func (r *SessionRepository) List(ctx context.Context, stationName, status string) ([]models.ChargeSession, error) {
	var (
		conditions []string
		args       []any
	)
	if stationName != "" {
		args = append(args, stationName)
		conditions = append(conditions, fmt.Sprintf("station_name = $%d", len(args)))
	}
	if status != "" {
		args = append(args, status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + sessionColumns + ` FROM charge_sessions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY start_time DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// CompletedFilter narrows ListCompleted. Zero values mean "no filter";
// Since bounds end_time from below.
type CompletedFilter struct {
	StationName   string
	VehicleNoLike string
	PaymentMethod string
	Since         *time.Time
}

// ListCompleted returns COMPLETED sessions matching the filter, newest end
// first.
func (r *SessionRepository) ListCompleted(ctx context.Context, f CompletedFilter) ([]models.ChargeSession, error) {
	conditions := []string{"status = $1"}
	args := []any{models.SessionStatusCompleted}

	if f.StationName != "" {
		args = append(args, f.StationName)
		conditions = append(conditions, fmt.Sprintf("station_name = $%d", len(args)))
	}
	if f.VehicleNoLike != "" {
		args = append(args, f.VehicleNoLike)
		conditions = append(conditions, fmt.Sprintf("vehicle_no ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if f.PaymentMethod != "" {
		args = append(args, f.PaymentMethod)
		conditions = append(conditions, fmt.Sprintf("payment_method = $%d", len(args)))
	}
	if f.Since != nil {
		args = append(args, *f.Since)
		conditions = append(conditions, fmt.Sprintf("end_time >= $%d", len(args)))
	}

	query := `SELECT ` + sessionColumns + ` FROM charge_sessions WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY end_time DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}
