package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"chargeledger/internal/service"
)

// VehiclesHandlers exposes vehicle lookup and search.
type VehiclesHandlers struct {
	reports *service.ReportsService
	logger  *zap.Logger
}

// NewVehiclesHandlers returns the handler set.
func NewVehiclesHandlers(reports *service.ReportsService, logger *zap.Logger) *VehiclesHandlers {
	return &VehiclesHandlers{reports: reports, logger: logger}
}

// Get handles GET /api/vehicles/{vehicle_no}.
func (h *VehiclesHandlers) Get(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.reports.Vehicle(r.Context(), r.PathValue("vehicle_no"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// Search handles GET /api/vehicles/search?query=. Queries shorter than two
// characters return an empty list.
func (h *VehiclesHandlers) Search(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.reports.SearchVehicles(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}
