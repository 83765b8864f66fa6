package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"chargeledger/internal/models"
	"chargeledger/internal/password"
	"chargeledger/internal/repository"
)

// ErrInvalidCredentials represents login failure. Unknown usernames and hash
// mismatches are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// UserStore defines the storage contract used by auth.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService verifies credentials and issues identity tokens.
type AuthService struct {
	users     UserStore
	hasher    password.Hasher
	tokenizer *TokenService
	logger    *zap.Logger
}

// NewAuthService builds AuthService.
func NewAuthService(users UserStore, hasher password.Hasher, tokenizer *TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokenizer: tokenizer,
		logger:    logger,
	}
}

// Login authenticates a user and produces a signed token.
func (s *AuthService) Login(ctx context.Context, username, pass string) (string, *models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || pass == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, pass); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokenizer.GenerateToken(user.Username, user.Role.String())
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("user logged in",
		zap.String("username", user.Username),
		zap.String("role", user.Role.String()),
	)
	return token, user, nil
}
