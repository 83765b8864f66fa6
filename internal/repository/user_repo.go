package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"chargeledger/internal/models"
)

// ErrUserNotFound represents missing user rows.
var ErrUserNotFound = errors.New("user not found")

// UserRepository handles CRUD for the users table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository returns a repository instance.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Roles are persisted in their string encoding.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const query = `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		strings.TrimSpace(user.Username),
		user.PasswordHash,
		user.Role.String(),
	).Scan(&user.ID)
}

// GetByUsername fetches a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `
		SELECT id, username, password_hash, role
		FROM users
		WHERE username = $1
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, strings.TrimSpace(username))

	var (
		user    models.User
		roleStr string
	)
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &roleStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	role, err := models.ParseRole(roleStr)
	if err != nil {
		return nil, err
	}
	user.Role = role
	return &user, nil
}

// Count returns the number of provisioned users. The seeder uses it to make
// seeding idempotent.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
