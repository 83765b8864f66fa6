package models

import "time"

// Session status values.
const (
	SessionStatusInProgress = "IN_PROGRESS"
	SessionStatusCompleted  = "COMPLETED"
)

// ChargeSession is one charging event for one vehicle at one station, from
// plug-in to payment. End-of-session fields stay nil until completion and
// are then populated together, exactly once.
type ChargeSession struct {
	SessionID        int64      `db:"session_id" json:"session_id"`
	VehicleNo        string     `db:"vehicle_no" json:"vehicle_no"`
	StationName      string     `db:"station_name" json:"station_name"`
	StartTime        time.Time  `db:"start_time" json:"start_time"`
	EndTime          *time.Time `db:"end_time" json:"end_time"`
	SOCStart         float64    `db:"soc_start" json:"soc_start"`
	SOCEnd           *float64   `db:"soc_end" json:"soc_end"`
	UnitKWh          *float64   `db:"unit_kwh" json:"unit_kwh"`
	CalculatedCostRs *float64   `db:"calculated_cost_rs" json:"calculated_cost_rs"`
	PricePaid        *float64   `db:"price_paid" json:"price_paid"`
	PaymentMethod    *string    `db:"payment_method" json:"payment_method"`
	Status           string     `db:"status" json:"status"`
}

// Completed reports whether the session reached its terminal state.
func (s *ChargeSession) Completed() bool {
	return s.Status == SessionStatusCompleted
}
