package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"chargeledger/internal/models"
	"chargeledger/internal/password"
	"chargeledger/internal/repository"
	"chargeledger/internal/service"
)

type memUserStore struct {
	users map[string]*models.User
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func newLoginHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)

	store := &memUserStore{users: map[string]*models.User{
		"manager": {ID: 1, Username: "manager", PasswordHash: string(hash), Role: models.ManagerRole()},
	}}
	tokens := service.NewTokenService("test-secret", time.Hour)
	auth := service.NewAuthService(store, password.NewBcryptHasher(bcrypt.MinCost), tokens, zap.NewNop())
	return NewLoginHandler(auth, zap.NewNop())
}

func TestLoginHandlerSuccess(t *testing.T) {
	handler := newLoginHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"manager","password":"admin123"}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "Manager", body["role"])
	assert.Equal(t, "manager", body["username"])
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	handler := newLoginHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"manager","password":"nope"}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "could not verify", decodeBody(t, rec)["message"])
}

func TestLoginHandlerMissingCredentials(t *testing.T) {
	handler := newLoginHandler(t)

	for _, payload := range []string{`{}`, `{"username":"manager"}`, `{"password":"admin123"}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "payload %q", payload)
	}
}
