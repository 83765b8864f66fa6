package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chargeledger/internal/models"
	"chargeledger/internal/repository"
)

// fakeSessionStore implements SessionStore in memory, mirroring the
// transactional upsert semantics of the SQL repository.
type fakeSessionStore struct {
	vehicles map[string]*models.Vehicle
	sessions map[int64]*models.ChargeSession
	nextID   int64

	listStation string
	listStatus  string
	listResult  []models.ChargeSession

	completedFilter repository.CompletedFilter
	completedResult []models.ChargeSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		vehicles: make(map[string]*models.Vehicle),
		sessions: make(map[int64]*models.ChargeSession),
	}
}

func (f *fakeSessionStore) StartWithVehicle(_ context.Context, upsert repository.VehicleUpsert, stationName string, socStart float64, now time.Time) (*models.ChargeSession, *models.Vehicle, error) {
	vehicle, ok := f.vehicles[upsert.VehicleNo]
	if !ok {
		vehicle = &models.Vehicle{VehicleNo: upsert.VehicleNo}
		f.vehicles[upsert.VehicleNo] = vehicle
	}
	if upsert.VehicleName != nil {
		vehicle.VehicleName = *upsert.VehicleName
	}
	if upsert.PhoneNo != nil {
		vehicle.PhoneNo = *upsert.PhoneNo
	}
	if upsert.BatteryCapacity != nil {
		vehicle.BatteryCapacity = upsert.BatteryCapacity
	}
	vehicle.LastUpdated = now

	f.nextID++
	session := &models.ChargeSession{
		SessionID:   f.nextID,
		VehicleNo:   upsert.VehicleNo,
		StationName: stationName,
		StartTime:   now,
		SOCStart:    socStart,
		Status:      models.SessionStatusInProgress,
	}
	f.sessions[session.SessionID] = session

	sessionCopy := *session
	vehicleCopy := *vehicle
	return &sessionCopy, &vehicleCopy, nil
}

func (f *fakeSessionStore) GetByID(_ context.Context, sessionID int64) (*models.ChargeSession, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (f *fakeSessionStore) Complete(_ context.Context, sessionID int64, c repository.Completion) (*models.ChargeSession, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	if session.Status == models.SessionStatusCompleted {
		return nil, repository.ErrSessionCompleted
	}
	session.SOCEnd = &c.SOCEnd
	session.UnitKWh = &c.UnitKWh
	session.PricePaid = &c.PricePaid
	session.PaymentMethod = &c.PaymentMethod
	session.CalculatedCostRs = &c.CalculatedCostRs
	endTime := c.EndTime
	session.EndTime = &endTime
	session.Status = models.SessionStatusCompleted
	if vehicle, ok := f.vehicles[session.VehicleNo]; ok {
		vehicle.LastUpdated = c.EndTime
	}
	clone := *session
	return &clone, nil
}

func (f *fakeSessionStore) ListByVehicle(_ context.Context, vehicleNo string) ([]models.ChargeSession, error) {
	var result []models.ChargeSession
	for _, s := range f.sessions {
		if s.VehicleNo == vehicleNo {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (f *fakeSessionStore) List(_ context.Context, stationName, status string) ([]models.ChargeSession, error) {
	f.listStation = stationName
	f.listStatus = status
	return f.listResult, nil
}

func (f *fakeSessionStore) ListCompleted(_ context.Context, filter repository.CompletedFilter) ([]models.ChargeSession, error) {
	f.completedFilter = filter
	return f.completedResult, nil
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

var (
	managerIdentity  = models.Identity{Username: "manager", Role: models.ManagerRole()}
	jamuneIdentity   = models.Identity{Username: "op_jamune", Role: models.OperatorRole("Jamune")}
	nagdhungaIdenity = models.Identity{Username: "op_nagdhunga", Role: models.OperatorRole("Nagdhunga")}
)

func TestStartSessionCreatesVehicleAndSession(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewSessionsService(store, nil, zap.NewNop())

	result, err := svc.Start(context.Background(), jamuneIdentity, StartSessionInput{
		VehicleNo:   "BA1234",
		StationName: "Jamune",
		SOCStart:    floatPtr(20),
		VehicleName: strPtr("Tata - Nexon"),
		PhoneNo:     strPtr("9800000000"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.SessionID)
	assert.Equal(t, "BA1234", result.Vehicle.VehicleNo)
	assert.Equal(t, "Tata - Nexon", result.Vehicle.VehicleName)

	session := store.sessions[1]
	require.NotNil(t, session)
	assert.Equal(t, models.SessionStatusInProgress, session.Status)
	assert.Equal(t, 20.0, session.SOCStart)
	assert.Nil(t, session.EndTime)
	assert.Nil(t, session.CalculatedCostRs)
}

func TestStartSessionUpsertKeepsOmittedFields(t *testing.T) {
	store := newFakeSessionStore()
	store.vehicles["BA1234"] = &models.Vehicle{
		VehicleNo:       "BA1234",
		VehicleName:     "Tata - Nexon",
		PhoneNo:         "9800000000",
		BatteryCapacity: floatPtr(45),
	}
	svc := NewSessionsService(store, nil, zap.NewNop())

	_, err := svc.Start(context.Background(), managerIdentity, StartSessionInput{
		VehicleNo:   "BA1234",
		StationName: "Nagdhunga",
		SOCStart:    floatPtr(35),
	})
	require.NoError(t, err)

	vehicle := store.vehicles["BA1234"]
	assert.Equal(t, "Tata - Nexon", vehicle.VehicleName)
	assert.Equal(t, "9800000000", vehicle.PhoneNo)
	require.NotNil(t, vehicle.BatteryCapacity)
	assert.Equal(t, 45.0, *vehicle.BatteryCapacity)
}

func TestStartSessionUpsertOverwritesProvidedFields(t *testing.T) {
	store := newFakeSessionStore()
	store.vehicles["BA1234"] = &models.Vehicle{
		VehicleNo:   "BA1234",
		VehicleName: "Old Name",
		PhoneNo:     "111",
	}
	svc := NewSessionsService(store, nil, zap.NewNop())

	// an explicit empty string is passed through, unlike omission
	_, err := svc.Start(context.Background(), managerIdentity, StartSessionInput{
		VehicleNo:       "BA1234",
		StationName:     "Jamune",
		SOCStart:        floatPtr(10),
		VehicleName:     strPtr(""),
		PhoneNo:         strPtr("222"),
		BatteryCapacity: floatPtr(60),
	})
	require.NoError(t, err)

	vehicle := store.vehicles["BA1234"]
	assert.Equal(t, "", vehicle.VehicleName)
	assert.Equal(t, "222", vehicle.PhoneNo)
	require.NotNil(t, vehicle.BatteryCapacity)
	assert.Equal(t, 60.0, *vehicle.BatteryCapacity)
}

func TestStartSessionOperatorStationMismatch(t *testing.T) {
	svc := NewSessionsService(newFakeSessionStore(), nil, zap.NewNop())

	_, err := svc.Start(context.Background(), jamuneIdentity, StartSessionInput{
		VehicleNo:   "BA1234",
		StationName: "Nagdhunga",
		SOCStart:    floatPtr(20),
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestStartSessionMissingFields(t *testing.T) {
	svc := NewSessionsService(newFakeSessionStore(), nil, zap.NewNop())

	cases := []StartSessionInput{
		{StationName: "Jamune", SOCStart: floatPtr(20)},
		{VehicleNo: "BA1234", SOCStart: floatPtr(20)},
		{VehicleNo: "BA1234", StationName: "Jamune"},
	}
	for _, in := range cases {
		_, err := svc.Start(context.Background(), managerIdentity, in)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
}

func TestEndSessionComputesTariffCost(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewSessionsService(store, nil, zap.NewNop())

	started, err := svc.Start(context.Background(), jamuneIdentity, StartSessionInput{
		VehicleNo:   "BA1234",
		StationName: "Jamune",
		SOCStart:    floatPtr(20),
	})
	require.NoError(t, err)

	session, err := svc.End(context.Background(), jamuneIdentity, EndSessionInput{
		SessionID:     started.SessionID,
		SOCEnd:        floatPtr(90),
		UnitKWh:       floatPtr(10),
		PricePaid:     floatPtr(140),
		PaymentMethod: "Cash",
	})
	require.NoError(t, err)

	assert.Equal(t, models.SessionStatusCompleted, session.Status)
	require.NotNil(t, session.CalculatedCostRs)
	assert.Equal(t, 150.0, *session.CalculatedCostRs)
	require.NotNil(t, session.PricePaid)
	assert.Equal(t, 140.0, *session.PricePaid)
	require.NotNil(t, session.EndTime)
}

func TestEndSessionTwiceFailsWithoutMutation(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewSessionsService(store, nil, zap.NewNop())

	started, err := svc.Start(context.Background(), managerIdentity, StartSessionInput{
		VehicleNo:   "BA1234",
		StationName: "Jamune",
		SOCStart:    floatPtr(20),
	})
	require.NoError(t, err)

	first, err := svc.End(context.Background(), managerIdentity, EndSessionInput{
		SessionID:     started.SessionID,
		SOCEnd:        floatPtr(80),
		UnitKWh:       floatPtr(5),
		PricePaid:     floatPtr(75),
		PaymentMethod: "qr",
	})
	require.NoError(t, err)

	_, err = svc.End(context.Background(), managerIdentity, EndSessionInput{
		SessionID:     started.SessionID,
		SOCEnd:        floatPtr(99),
		UnitKWh:       floatPtr(50),
		PricePaid:     floatPtr(999),
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	stored := store.sessions[started.SessionID]
	assert.Equal(t, *first.UnitKWh, *stored.UnitKWh)
	assert.Equal(t, *first.PricePaid, *stored.PricePaid)
	assert.Equal(t, *first.PaymentMethod, *stored.PaymentMethod)
}

func TestEndSessionUnknownID(t *testing.T) {
	svc := NewSessionsService(newFakeSessionStore(), nil, zap.NewNop())

	_, err := svc.End(context.Background(), managerIdentity, EndSessionInput{
		SessionID:     42,
		SOCEnd:        floatPtr(80),
		UnitKWh:       floatPtr(5),
		PricePaid:     floatPtr(75),
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestEndSessionOperatorStationMismatch(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewSessionsService(store, nil, zap.NewNop())

	started, err := svc.Start(context.Background(), nagdhungaIdenity, StartSessionInput{
		VehicleNo:   "BA1234",
		StationName: "Nagdhunga",
		SOCStart:    floatPtr(20),
	})
	require.NoError(t, err)

	_, err = svc.End(context.Background(), jamuneIdentity, EndSessionInput{
		SessionID:     started.SessionID,
		SOCEnd:        floatPtr(80),
		UnitKWh:       floatPtr(5),
		PricePaid:     floatPtr(75),
		PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestEndSessionMissingFields(t *testing.T) {
	svc := NewSessionsService(newFakeSessionStore(), nil, zap.NewNop())

	cases := []EndSessionInput{
		{SOCEnd: floatPtr(80), UnitKWh: floatPtr(5), PricePaid: floatPtr(75), PaymentMethod: "cash"},
		{SessionID: 1, UnitKWh: floatPtr(5), PricePaid: floatPtr(75), PaymentMethod: "cash"},
		{SessionID: 1, SOCEnd: floatPtr(80), PricePaid: floatPtr(75), PaymentMethod: "cash"},
		{SessionID: 1, SOCEnd: floatPtr(80), UnitKWh: floatPtr(5), PaymentMethod: "cash"},
		{SessionID: 1, SOCEnd: floatPtr(80), UnitKWh: floatPtr(5), PricePaid: floatPtr(75)},
	}
	for _, in := range cases {
		_, err := svc.End(context.Background(), managerIdentity, in)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
}
