package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"chargeledger/internal/config"
	"chargeledger/internal/db"
	"chargeledger/internal/password"
	"chargeledger/internal/repository"
	"chargeledger/internal/seed"
	"chargeledger/libs/logging"
)

// Seeds the default users and the vehicle reference catalog. Safe to run
// repeatedly.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := db.EnsureSchema(ctx, sqlDB); err != nil {
		logger.Fatal("failed to ensure schema", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(sqlDB)
	vehicleRepo := repository.NewVehicleRepository(sqlDB)
	hasher := password.NewBcryptHasher(0)

	if err := seed.Users(ctx, userRepo, hasher, logger); err != nil {
		logger.Fatal("failed to seed users", zap.Error(err))
	}
	if err := seed.VehicleCatalog(ctx, vehicleRepo, logger); err != nil {
		logger.Fatal("failed to seed vehicle catalog", zap.Error(err))
	}

	logger.Info("seeding complete")
}
