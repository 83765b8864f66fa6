package seed

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"chargeledger/internal/models"
	"chargeledger/internal/password"
	"chargeledger/internal/repository"
)

type defaultUser struct {
	username string
	password string
	role     models.Role
}

// Default accounts provisioned on an empty database. Passwords are expected
// to be rotated by the operator after first login.
var defaultUsers = []defaultUser{
	{username: "manager", password: "admin123", role: models.ManagerRole()},
	{username: "op_nagdhunga", password: "pass123", role: models.OperatorRole("Nagdhunga")},
	{username: "op_jamune", password: "pass123", role: models.OperatorRole("Jamune")},
}

// Users provisions the default accounts when the users table is empty.
// Idempotent: a non-empty table is left untouched.
func Users(ctx context.Context, users *repository.UserRepository, hasher password.Hasher, logger *zap.Logger) error {
	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("users already exist, skipping seed", zap.Int64("count", count))
		return nil
	}

	for _, du := range defaultUsers {
		hash, err := hasher.Hash(du.password)
		if err != nil {
			return err
		}
		user := &models.User{
			Username:     du.username,
			PasswordHash: hash,
			Role:         du.role,
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		logger.Info("seeded user",
			zap.String("username", du.username),
			zap.String("role", du.role.String()),
		)
	}
	return nil
}

// VehicleCatalog loads the reference catalog of known EV models into the
// vehicle master table. Entries whose display name already exists are
// skipped, so re-running is safe.
func VehicleCatalog(ctx context.Context, vehicles *repository.VehicleRepository, logger *zap.Logger) error {
	var added, skipped int
	for _, entry := range catalog {
		exists, err := vehicles.ExistsByName(ctx, entry.Name)
		if err != nil {
			return err
		}
		if exists {
			skipped++
			continue
		}

		vehicle := &models.Vehicle{
			VehicleNo:       referenceNo(entry.Name, added+1),
			VehicleName:     entry.Name,
			BatteryCapacity: parseCapacity(entry.CapacityKWh),
		}
		if err := vehicles.Create(ctx, vehicle); err != nil {
			return err
		}
		added++
	}

	logger.Info("vehicle catalog seeded",
		zap.Int("added", added),
		zap.Int("skipped", skipped),
	)
	return nil
}

// referenceNo builds a synthetic registration number for catalog rows,
// e.g. "BYD-REF-001".
func referenceNo(name string, seq int) string {
	brand := name
	if idx := strings.Index(name, " - "); idx > 0 {
		brand = name[:idx]
	}
	brand = strings.ToUpper(strings.ReplaceAll(brand, " ", ""))
	if len(brand) > 3 {
		brand = brand[:3]
	}
	return fmt.Sprintf("%s-REF-%03d", brand, seq)
}

// parseCapacity maps unparsable catalog values, like "TBA", to no value.
func parseCapacity(raw string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &f
}
