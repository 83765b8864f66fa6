package db

import (
	"context"
	"database/sql"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS vehicle_master (
		vehicle_no       TEXT PRIMARY KEY,
		vehicle_name     TEXT NOT NULL DEFAULT '',
		phone_no         TEXT NOT NULL DEFAULT '',
		battery_capacity DOUBLE PRECISION,
		last_updated     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS charge_sessions (
		session_id         BIGSERIAL PRIMARY KEY,
		vehicle_no         TEXT NOT NULL REFERENCES vehicle_master (vehicle_no),
		station_name       TEXT NOT NULL,
		start_time         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		end_time           TIMESTAMPTZ,
		soc_start          DOUBLE PRECISION NOT NULL,
		soc_end            DOUBLE PRECISION,
		unit_kwh           DOUBLE PRECISION,
		calculated_cost_rs DOUBLE PRECISION,
		price_paid         DOUBLE PRECISION,
		payment_method     TEXT,
		status             TEXT NOT NULL DEFAULT 'IN_PROGRESS'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_charge_sessions_vehicle ON charge_sessions (vehicle_no)`,
	`CREATE INDEX IF NOT EXISTS idx_charge_sessions_station ON charge_sessions (station_name, status)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL
	)`,
}

// EnsureSchema creates the tables when they do not exist yet. The service
// runs it at startup so a fresh database is usable without a separate
// migration step.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
