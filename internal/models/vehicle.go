package models

import "time"

// Vehicle is a row of the vehicle master table, keyed by registration
// number. Created on first session start or pre-seeded from the reference
// catalog.
type Vehicle struct {
	VehicleNo       string    `db:"vehicle_no" json:"vehicle_no"`
	VehicleName     string    `db:"vehicle_name" json:"vehicle_name"`
	PhoneNo         string    `db:"phone_no" json:"phone_no"`
	BatteryCapacity *float64  `db:"battery_capacity" json:"battery_capacity"`
	LastUpdated     time.Time `db:"last_updated" json:"last_updated"`
}
