package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"chargeledger/internal/models"
	"chargeledger/internal/repository"
	"chargeledger/internal/service"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticate validates the bearer token, re-fetches the user record and
// places the resulting Identity in the request context. The role comes from
// the live user row; already-issued tokens stay valid for their full window
// regardless of later role changes.
func Authenticate(tokens *service.TokenService, users service.UserStore, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "token is missing")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w, "token is missing")
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
			if err != nil {
				unauthorized(w, "token is invalid")
				return
			}

			user, err := users.GetByUsername(r.Context(), claims.Username)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					unauthorized(w, "token is invalid")
					return
				}
				logger.Error("user lookup failed during auth", zap.Error(err))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
				return
			}

			identity := models.Identity{Username: user.Username, Role: user.Role}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	val := ctx.Value(identityKey)
	if val == nil {
		return models.Identity{}, false
	}
	identity, ok := val.(models.Identity)
	return identity, ok
}

// WithIdentity returns a context carrying the given identity. Intended for
// handler tests.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}
