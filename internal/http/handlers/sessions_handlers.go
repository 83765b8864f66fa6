package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"chargeledger/internal/http/middleware"
	"chargeledger/internal/service"
)

// SessionsHandlers exposes the session lifecycle endpoints.
type SessionsHandlers struct {
	svc    *service.SessionsService
	logger *zap.Logger
}

// NewSessionsHandlers returns the handler set.
func NewSessionsHandlers(svc *service.SessionsService, logger *zap.Logger) *SessionsHandlers {
	return &SessionsHandlers{svc: svc, logger: logger}
}

type startSessionRequest struct {
	VehicleNo       string  `json:"vehicle_no"`
	StationName     string  `json:"station_name"`
	SOCStart        any     `json:"soc_start"`
	VehicleName     *string `json:"vehicle_name"`
	PhoneNo         *string `json:"phone_no"`
	BatteryCapacity any     `json:"battery_capacity"`
}

type endSessionRequest struct {
	SessionID     int64  `json:"session_id"`
	SOCEnd        any    `json:"soc_end"`
	UnitKWh       any    `json:"unit_kwh"`
	PricePaid     any    `json:"price_paid"`
	PaymentMethod string `json:"payment_method"`
}

// Start handles POST /api/sessions/start.
func (h *SessionsHandlers) Start(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "token is missing")
		return
	}

	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := h.svc.Start(r.Context(), identity, service.StartSessionInput{
		VehicleNo:       req.VehicleNo,
		StationName:     req.StationName,
		SOCStart:        toFloat(req.SOCStart),
		VehicleName:     req.VehicleName,
		PhoneNo:         req.PhoneNo,
		BatteryCapacity: toFloat(req.BatteryCapacity),
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "session started",
		"session_id": result.SessionID,
		"vehicle":    result.Vehicle,
	})
}

// End handles POST /api/sessions/end.
func (h *SessionsHandlers) End(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "token is missing")
		return
	}

	var req endSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	session, err := h.svc.End(r.Context(), identity, service.EndSessionInput{
		SessionID:     req.SessionID,
		SOCEnd:        toFloat(req.SOCEnd),
		UnitKWh:       toFloat(req.UnitKWh),
		PricePaid:     toFloat(req.PricePaid),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "session ended",
		"session": session,
	})
}
