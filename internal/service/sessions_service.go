package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"chargeledger/internal/models"
	redisstore "chargeledger/internal/redis"
	"chargeledger/internal/repository"
)

// Fixed tariff applied to every completed session, independent of the
// amount actually collected.
const tariffRsPerKWh = 15.0

var (
	// ErrMissingFields indicates absent or malformed required inputs.
	ErrMissingFields = errors.New("sessions: missing required fields")
	// ErrForbidden indicates a station the caller may not act upon.
	ErrForbidden = errors.New("sessions: station not permitted for role")
	// ErrAlreadyCompleted indicates a second completion attempt.
	ErrAlreadyCompleted = errors.New("sessions: session already completed")
)

// SessionStore defines the session persistence contract.
type SessionStore interface {
	StartWithVehicle(ctx context.Context, upsert repository.VehicleUpsert, stationName string, socStart float64, now time.Time) (*models.ChargeSession, *models.Vehicle, error)
	GetByID(ctx context.Context, sessionID int64) (*models.ChargeSession, error)
	Complete(ctx context.Context, sessionID int64, c repository.Completion) (*models.ChargeSession, error)
	ListByVehicle(ctx context.Context, vehicleNo string) ([]models.ChargeSession, error)
	List(ctx context.Context, stationName, status string) ([]models.ChargeSession, error)
	ListCompleted(ctx context.Context, f repository.CompletedFilter) ([]models.ChargeSession, error)
}

// SessionsService owns the charging session lifecycle.
type SessionsService struct {
	sessions    SessionStore
	activeStore *redisstore.Store
	logger      *zap.Logger
}

// NewSessionsService builds the service. activeStore may be nil when no
// cache is configured.
func NewSessionsService(sessions SessionStore, activeStore *redisstore.Store, logger *zap.Logger) *SessionsService {
	return &SessionsService{
		sessions:    sessions,
		activeStore: activeStore,
		logger:      logger,
	}
}

// StartSessionInput carries a session start request. Nil pointers mean the
// caller omitted the field.
type StartSessionInput struct {
	VehicleNo       string
	StationName     string
	SOCStart        *float64
	VehicleName     *string
	PhoneNo         *string
	BatteryCapacity *float64
}

// StartSessionResult is the response payload for a started session.
type StartSessionResult struct {
	SessionID int64
	Vehicle   *models.Vehicle
}

// Start authorizes, validates, upserts the vehicle and inserts a new
// IN_PROGRESS session as one atomic unit.
func (s *SessionsService) Start(ctx context.Context, identity models.Identity, in StartSessionInput) (*StartSessionResult, error) {
	if !identity.Role.AllowsStation(in.StationName) {
		return nil, ErrForbidden
	}
	if in.VehicleNo == "" || in.StationName == "" || in.SOCStart == nil {
		return nil, ErrMissingFields
	}

	now := time.Now().UTC()
	session, vehicle, err := s.sessions.StartWithVehicle(ctx, repository.VehicleUpsert{
		VehicleNo:       in.VehicleNo,
		VehicleName:     in.VehicleName,
		PhoneNo:         in.PhoneNo,
		BatteryCapacity: in.BatteryCapacity,
	}, in.StationName, *in.SOCStart, now)
	if err != nil {
		return nil, err
	}

	if s.activeStore != nil {
		cacheErr := s.activeStore.Save(ctx, redisstore.ActiveSession{
			SessionID:   session.SessionID,
			VehicleNo:   session.VehicleNo,
			StationName: session.StationName,
			SOCStart:    session.SOCStart,
		})
		if cacheErr != nil && cacheErr != redis.Nil {
			s.logger.Warn("failed to cache active session", zap.Error(cacheErr))
		}
	}

	s.logger.Info("session started",
		zap.Int64("session_id", session.SessionID),
		zap.String("vehicle_no", session.VehicleNo),
		zap.String("station", session.StationName),
	)
	return &StartSessionResult{SessionID: session.SessionID, Vehicle: vehicle}, nil
}

// EndSessionInput carries a session completion request. All fields are
// required.
type EndSessionInput struct {
	SessionID     int64
	SOCEnd        *float64
	UnitKWh       *float64
	PricePaid     *float64
	PaymentMethod string
}

// End transitions a session to COMPLETED, computing the tariff cost and
// bumping the owning vehicle, all atomically. Re-completion fails with
// ErrAlreadyCompleted and mutates nothing.
func (s *SessionsService) End(ctx context.Context, identity models.Identity, in EndSessionInput) (*models.ChargeSession, error) {
	if in.SessionID == 0 || in.SOCEnd == nil || in.UnitKWh == nil || in.PricePaid == nil || in.PaymentMethod == "" {
		return nil, ErrMissingFields
	}

	session, err := s.sessions.GetByID(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	if !identity.Role.AllowsStation(session.StationName) {
		return nil, ErrForbidden
	}

	completed, err := s.sessions.Complete(ctx, in.SessionID, repository.Completion{
		SOCEnd:           *in.SOCEnd,
		UnitKWh:          *in.UnitKWh,
		PricePaid:        *in.PricePaid,
		PaymentMethod:    in.PaymentMethod,
		CalculatedCostRs: *in.UnitKWh * tariffRsPerKWh,
		EndTime:          time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrSessionCompleted) {
			return nil, ErrAlreadyCompleted
		}
		return nil, err
	}

	if s.activeStore != nil {
		if err := s.activeStore.Delete(ctx, in.SessionID); err != nil && err != redis.Nil {
			s.logger.Warn("failed to evict active session cache", zap.Error(err))
		}
	}

	s.logger.Info("session completed",
		zap.Int64("session_id", completed.SessionID),
		zap.Float64("unit_kwh", *in.UnitKWh),
		zap.Float64("cost_rs", *in.UnitKWh*tariffRsPerKWh),
	)
	return completed, nil
}
