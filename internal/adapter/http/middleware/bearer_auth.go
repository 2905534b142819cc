package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/api-sage/banking-ledger/internal/logger"
)

type contextKey string

const userIDContextKey contextKey = "userID"

// BearerAuth validates the access token and injects the caller's user
// id into the request context. The ledger trusts this identity; it
// performs no further authentication of its own.
func BearerAuth(jwtSecret string) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(secret) == 0 {
				logger.Error("bearer auth middleware missing server configuration", nil, logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				http.Error(w, "server auth configuration is missing", http.StatusInternalServerError)
				return
			}

			userID, err := parseAccessToken(r.Header.Get("Authorization"), secret)
			if err != nil {
				logger.Info("bearer auth middleware unauthorized request", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"reason": err.Error(),
				})
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated caller id set by BearerAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok && userID != ""
}

func parseAccessToken(header string, secret []byte) (string, error) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return "", fmt.Errorf("authorization header is missing")
	}

	parts := strings.SplitN(raw, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("authorization header must be a bearer token")
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(parts[1]), claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("token is invalid")
	}

	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return "", fmt.Errorf("token is not an access token")
	}

	userID, _ := claims["sub"].(string)
	if userID == "" {
		return "", fmt.Errorf("token has no subject")
	}

	return userID, nil
}
