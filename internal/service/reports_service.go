package service

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"chargeledger/internal/models"
	"chargeledger/internal/repository"
)

const searchResultLimit = 10

// VehicleStore defines the vehicle lookup contract.
type VehicleStore interface {
	Get(ctx context.Context, vehicleNo string) (*models.Vehicle, error)
	Search(ctx context.Context, query string, limit int) ([]models.Vehicle, error)
}

// ReportsService serves filtered listings, search and per-station
// statistics.
type ReportsService struct {
	sessions SessionStore
	vehicles VehicleStore
	logger   *zap.Logger
}

// NewReportsService builds the service.
func NewReportsService(sessions SessionStore, vehicles VehicleStore, logger *zap.Logger) *ReportsService {
	return &ReportsService{
		sessions: sessions,
		vehicles: vehicles,
		logger:   logger,
	}
}

// Vehicle returns a single vehicle by registration number.
func (s *ReportsService) Vehicle(ctx context.Context, vehicleNo string) (*models.Vehicle, error) {
	return s.vehicles.Get(ctx, vehicleNo)
}

// VehicleHistory returns all sessions for a vehicle, newest start first.
// Manager only.
func (s *ReportsService) VehicleHistory(ctx context.Context, identity models.Identity, vehicleNo string) ([]models.ChargeSession, error) {
	if !identity.Role.IsManager() {
		return nil, ErrForbidden
	}
	sessions, err := s.sessions.ListByVehicle(ctx, vehicleNo)
	if err != nil {
		return nil, err
	}
	return nonNilSessions(sessions), nil
}

// StationAggregate breaks revenue down per station. Cash and QR are
// subtotals of price_paid keyed by payment method; other methods still
// count toward kwh and revenue.
type StationAggregate struct {
	KWh     float64 `json:"kwh"`
	Revenue float64 `json:"revenue"`
	Cash    float64 `json:"cash"`
	QR      float64 `json:"qr"`
}

// Aggregates is the global report over COMPLETED sessions.
type Aggregates struct {
	TotalKWh     float64                      `json:"total_kwh"`
	TotalRevenue float64                      `json:"total_revenue"`
	ByStation    map[string]*StationAggregate `json:"by_station"`
}

// GlobalAggregates sums energy and revenue over all COMPLETED sessions.
// Manager only.
func (s *ReportsService) GlobalAggregates(ctx context.Context, identity models.Identity) (*Aggregates, error) {
	if !identity.Role.IsManager() {
		return nil, ErrForbidden
	}

	sessions, err := s.sessions.ListCompleted(ctx, repository.CompletedFilter{})
	if err != nil {
		return nil, err
	}

	agg := &Aggregates{ByStation: make(map[string]*StationAggregate)}
	for i := range sessions {
		sess := &sessions[i]
		kwh := floatOrZero(sess.UnitKWh)
		paid := floatOrZero(sess.PricePaid)

		agg.TotalKWh += kwh
		agg.TotalRevenue += paid

		station, ok := agg.ByStation[sess.StationName]
		if !ok {
			station = &StationAggregate{}
			agg.ByStation[sess.StationName] = station
		}
		station.KWh += kwh
		station.Revenue += paid

		if sess.PaymentMethod != nil {
			switch strings.ToLower(*sess.PaymentMethod) {
			case "cash":
				station.Cash += paid
			case "qr":
				station.QR += paid
			}
		}
	}
	return agg, nil
}

// Sessions lists sessions with optional station and status filters, newest
// start first. Operators have the station filter silently replaced by their
// assignment, whatever they passed.
func (s *ReportsService) Sessions(ctx context.Context, identity models.Identity, stationName, status string) ([]models.ChargeSession, error) {
	if assigned, ok := identity.Role.Station(); ok {
		stationName = assigned
	}
	sessions, err := s.sessions.List(ctx, stationName, status)
	if err != nil {
		return nil, err
	}
	return nonNilSessions(sessions), nil
}

// SearchVehicles matches the query case-insensitively against registration
// number or display name. Queries shorter than two characters yield an
// empty result, never an error. At most ten rows are returned.
func (s *ReportsService) SearchVehicles(ctx context.Context, query string) ([]models.Vehicle, error) {
	if len(query) < 2 {
		return []models.Vehicle{}, nil
	}
	vehicles, err := s.vehicles.Search(ctx, query, searchResultLimit)
	if err != nil {
		return nil, err
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	return vehicles, nil
}

// StationStats summarizes COMPLETED sessions of one station over a trailing
// window.
type StationStats struct {
	StationName               string  `json:"station_name"`
	Period                    string  `json:"period"`
	TotalSessions             int     `json:"total_sessions"`
	TotalEarnings             float64 `json:"total_earnings"`
	TotalEnergyKWh            float64 `json:"total_energy_kwh"`
	AvgSessionDurationMinutes float64 `json:"avg_session_duration_minutes"`
}

// StationStats computes count, earnings, energy and average duration for a
// station. Operators are rejected on a station mismatch. An empty window
// yields zeros.
func (s *ReportsService) StationStats(ctx context.Context, identity models.Identity, stationName, period string) (*StationStats, error) {
	if !identity.Role.AllowsStation(stationName) {
		return nil, ErrForbidden
	}

	sessions, err := s.sessions.ListCompleted(ctx, repository.CompletedFilter{
		StationName: stationName,
		Since:       periodStart(period, time.Now().UTC()),
	})
	if err != nil {
		return nil, err
	}

	stats := &StationStats{StationName: stationName, Period: period, TotalSessions: len(sessions)}
	var (
		durationSum   float64
		durationCount int
	)
	for i := range sessions {
		sess := &sessions[i]
		stats.TotalEarnings += floatOrZero(sess.PricePaid)
		stats.TotalEnergyKWh += floatOrZero(sess.UnitKWh)
		if sess.EndTime != nil {
			durationSum += sess.EndTime.Sub(sess.StartTime).Minutes()
			durationCount++
		}
	}
	if durationCount > 0 {
		stats.AvgSessionDurationMinutes = round2(durationSum / float64(durationCount))
	}
	stats.TotalEarnings = round2(stats.TotalEarnings)
	stats.TotalEnergyKWh = round2(stats.TotalEnergyKWh)
	return stats, nil
}

// FilteredQuery narrows FilteredSessions. Empty strings mean "no filter";
// payment method "all" is treated as absent.
type FilteredQuery struct {
	StationName   string
	VehicleNo     string
	PaymentMethod string
	Period        string
}

// FilteredSummary totals the filtered set.
type FilteredSummary struct {
	TotalSessions  int     `json:"total_sessions"`
	TotalEarnings  float64 `json:"total_earnings"`
	TotalEnergyKWh float64 `json:"total_energy_kwh"`
}

// FilteredSessions pairs the session list with its summary.
type FilteredSessions struct {
	Sessions []models.ChargeSession `json:"sessions"`
	Summary  FilteredSummary        `json:"summary"`
}

// Filtered returns COMPLETED sessions matching the query, newest end first,
// plus summary totals. Operators have the station filter silently replaced
// by their assignment, matching Sessions.
func (s *ReportsService) Filtered(ctx context.Context, identity models.Identity, q FilteredQuery) (*FilteredSessions, error) {
	if assigned, ok := identity.Role.Station(); ok {
		q.StationName = assigned
	}

	paymentMethod := q.PaymentMethod
	if paymentMethod == "all" {
		paymentMethod = ""
	}

	sessions, err := s.sessions.ListCompleted(ctx, repository.CompletedFilter{
		StationName:   q.StationName,
		VehicleNoLike: q.VehicleNo,
		PaymentMethod: paymentMethod,
		Since:         periodStart(q.Period, time.Now().UTC()),
	})
	if err != nil {
		return nil, err
	}

	result := &FilteredSessions{Sessions: nonNilSessions(sessions)}
	result.Summary.TotalSessions = len(sessions)
	for i := range sessions {
		result.Summary.TotalEarnings += floatOrZero(sessions[i].PricePaid)
		result.Summary.TotalEnergyKWh += floatOrZero(sessions[i].UnitKWh)
	}
	result.Summary.TotalEarnings = round2(result.Summary.TotalEarnings)
	result.Summary.TotalEnergyKWh = round2(result.Summary.TotalEnergyKWh)
	return result, nil
}

// periodStart maps a period name to the lower bound of its trailing window.
// Month and year are fixed 30/365 day spans, not calendar units. Unknown
// periods and "all" mean no bound.
func periodStart(period string, now time.Time) *time.Time {
	var since time.Time
	switch period {
	case "day":
		since = now.Add(-24 * time.Hour)
	case "week":
		since = now.AddDate(0, 0, -7)
	case "month":
		since = now.AddDate(0, 0, -30)
	case "year":
		since = now.AddDate(0, 0, -365)
	default:
		return nil
	}
	return &since
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func nonNilSessions(sessions []models.ChargeSession) []models.ChargeSession {
	if sessions == nil {
		return []models.ChargeSession{}
	}
	return sessions
}
