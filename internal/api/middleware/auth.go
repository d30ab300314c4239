package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dom/moodbite/internal/api/response"
	"github.com/dom/moodbite/internal/domain"
	"github.com/dom/moodbite/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const (
	ClaimsKey contextKey = "claims"
)

// TokenVerifier is satisfied by *service.AuthService.
type TokenVerifier interface {
	VerifyToken(token string) (*service.Claims, error)
}

// Authenticate resolves the caller identity from the Authorization header.
// It returns domain.ErrMissingToken when no well-formed bearer token is present
// and an error matching domain.ErrInvalidToken when verification fails.
func Authenticate(verifier TokenVerifier, r *http.Request) (*service.Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, domain.ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return nil, domain.ErrMissingToken
	}

	return verifier.VerifyToken(parts[1])
}

// RequireAuth rejects requests without a valid bearer token: 401 when the token
// is missing, 403 when it does not verify. Verified claims are stored in the
// request context.
func RequireAuth(verifier TokenVerifier, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := Authenticate(verifier, r)
			if err != nil {
				if errors.Is(err, domain.ErrMissingToken) {
					response.Error(w, http.StatusUnauthorized, "Access token required")
					return
				}
				log.Debug("token rejected", zap.String("path", r.URL.Path), zap.Error(err))
				response.Error(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetClaims(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*service.Claims)
	return claims, ok
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	claims, ok := GetClaims(ctx)
	if !ok {
		return uuid.Nil, false
	}
	userID, err := claims.UserID()
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}
