package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"chargeledger/internal/http/middleware"
	"chargeledger/internal/service"
)

// ReportsHandlers exposes session listings and statistics.
type ReportsHandlers struct {
	reports *service.ReportsService
	logger  *zap.Logger
}

// NewReportsHandlers returns the handler set.
func NewReportsHandlers(reports *service.ReportsService, logger *zap.Logger) *ReportsHandlers {
	return &ReportsHandlers{reports: reports, logger: logger}
}

// VehicleHistory handles GET /api/vehicles/{vehicle_no}/history. Manager
// only.
func (h *ReportsHandlers) VehicleHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "token is missing")
		return
	}
	sessions, err := h.reports.VehicleHistory(r.Context(), identity, r.PathValue("vehicle_no"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// Aggregates handles GET /api/reports/aggregates. Manager only.
func (h *ReportsHandlers) Aggregates(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "token is missing")
		return
	}
	agg, err := h.reports.GlobalAggregates(r.Context(), identity)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, agg)
}

// Sessions handles GET /api/sessions?station_name=&status=.
func (h *ReportsHandlers) Sessions(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "token is missing")
		return
	}
	q := r.URL.Query()
	sessions, err := h.reports.Sessions(r.Context(), identity, q.Get("station_name"), q.Get("status"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// StationStats handles GET /api/stats/station/{station_name}?period=.
func (h *ReportsHandlers) StationStats(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "token is missing")
		return
	}
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "all"
	}
	stats, err := h.reports.StationStats(r.Context(), identity, r.PathValue("station_name"), period)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Filtered handles GET /api/sessions/filtered?....
func (h *ReportsHandlers) Filtered(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "token is missing")
		return
	}
	q := r.URL.Query()
	period := q.Get("period")
	if period == "" {
		period = "all"
	}
	result, err := h.reports.Filtered(r.Context(), identity, service.FilteredQuery{
		StationName:   q.Get("station_name"),
		VehicleNo:     q.Get("vehicle_no"),
		PaymentMethod: q.Get("payment_method"),
		Period:        period,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
