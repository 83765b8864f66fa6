package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chargeledger/internal/models"
	"chargeledger/internal/repository"
	"chargeledger/internal/service"
)

type stubUserStore struct {
	users map[string]*models.User
}

func (s *stubUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func newAuthMiddleware(users *stubUserStore, tokens *service.TokenService) func(http.Handler) http.Handler {
	return Authenticate(tokens, users, zap.NewNop())
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body["message"]
}

func TestAuthenticateValidToken(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	users := &stubUserStore{users: map[string]*models.User{
		"op_jamune": {ID: 1, Username: "op_jamune", Role: models.OperatorRole("Jamune")},
	}}

	token, err := tokens.GenerateToken("op_jamune", "Operator-Jamune")
	require.NoError(t, err)

	var captured models.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		captured = identity
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	newAuthMiddleware(users, tokens)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "op_jamune", captured.Username)
	station, ok := captured.Role.Station()
	require.True(t, ok)
	assert.Equal(t, "Jamune", station)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	users := &stubUserStore{users: map[string]*models.User{}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()

	newAuthMiddleware(users, tokens)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token is missing", decodeMessage(t, rec))
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	users := &stubUserStore{users: map[string]*models.User{}}

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	req.Header.Set("Authorization", "justatoken")
	rec := httptest.NewRecorder()

	newAuthMiddleware(users, tokens)(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token is missing", decodeMessage(t, rec))
}

func TestAuthenticateInvalidToken(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	users := &stubUserStore{users: map[string]*models.User{}}

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()

	newAuthMiddleware(users, tokens)(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token is invalid", decodeMessage(t, rec))
}

func TestAuthenticateWrongSecret(t *testing.T) {
	issuer := service.NewTokenService("other-secret", time.Hour)
	verifier := service.NewTokenService("test-secret", time.Hour)
	users := &stubUserStore{users: map[string]*models.User{}}

	token, err := issuer.GenerateToken("manager", "Manager")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	newAuthMiddleware(users, verifier)(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token is invalid", decodeMessage(t, rec))
}

func TestAuthenticateDeletedUser(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	users := &stubUserStore{users: map[string]*models.User{}}

	token, err := tokens.GenerateToken("ghost", "Manager")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	newAuthMiddleware(users, tokens)(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token is invalid", decodeMessage(t, rec))
}

func TestAuthenticateUsesLiveRole(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	users := &stubUserStore{users: map[string]*models.User{
		"op_jamune": {ID: 1, Username: "op_jamune", Role: models.OperatorRole("Nagdhunga")},
	}}

	// token carries the stale role, the user row carries the reassignment
	token, err := tokens.GenerateToken("op_jamune", "Operator-Jamune")
	require.NoError(t, err)

	var captured models.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = IdentityFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	newAuthMiddleware(users, tokens)(next).ServeHTTP(rec, req)

	station, ok := captured.Role.Station()
	require.True(t, ok)
	assert.Equal(t, "Nagdhunga", station)
}
