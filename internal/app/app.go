package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libredis "chargeledger/libs/redis"

	appconfig "chargeledger/internal/config"
	"chargeledger/internal/db"
	httpserver "chargeledger/internal/http"
	"chargeledger/internal/http/handlers"
	"chargeledger/internal/http/middleware"
	"chargeledger/internal/password"
	redisstore "chargeledger/internal/redis"
	"chargeledger/internal/repository"
	"chargeledger/internal/service"
)

// App wires dependencies for the charge ledger service.
type App struct {
	server      *httpserver.Server
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New builds the application graph.
func New(ctx context.Context, cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	var (
		redisClient *redis.Client
		activeStore *redisstore.Store
	)
	if cfg.Redis.Addr != "" {
		redisClient, err = libredis.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		activeStore = redisstore.NewStore(redisClient, cfg.ActiveSessionTTL())
	}

	userRepo := repository.NewUserRepository(sqlDB)
	vehicleRepo := repository.NewVehicleRepository(sqlDB)
	sessionRepo := repository.NewSessionRepository(sqlDB)

	hasher := password.NewBcryptHasher(0)
	tokenSvc := service.NewTokenService(cfg.JWT.Secret, cfg.JWTExpiration())
	authSvc := service.NewAuthService(userRepo, hasher, tokenSvc, logger)
	sessionsSvc := service.NewSessionsService(sessionRepo, activeStore, logger)
	reportsSvc := service.NewReportsService(sessionRepo, vehicleRepo, logger)

	sessionsHandlers := handlers.NewSessionsHandlers(sessionsSvc, logger)
	vehiclesHandlers := handlers.NewVehiclesHandlers(reportsSvc, logger)
	reportsHandlers := handlers.NewReportsHandlers(reportsSvc, logger)

	routes := httpserver.Routes{
		Login:           handlers.NewLoginHandler(authSvc, logger),
		StartSession:    sessionsHandlers.Start,
		EndSession:      sessionsHandlers.End,
		Sessions:        reportsHandlers.Sessions,
		FilteredSession: reportsHandlers.Filtered,
		Vehicle:         vehiclesHandlers.Get,
		VehicleHistory:  reportsHandlers.VehicleHistory,
		VehicleSearch:   vehiclesHandlers.Search,
		Aggregates:      reportsHandlers.Aggregates,
		StationStats:    reportsHandlers.StationStats,
		Health:          handlers.NewHealthHandler(),
	}

	auth := middleware.Authenticate(tokenSvc, userRepo, logger)
	router := httpserver.NewRouter(routes, auth)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run starts serving HTTP traffic until context cancellation.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
