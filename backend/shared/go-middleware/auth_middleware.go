package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

type contextKey string

const (
	ContextKeyUserID = contextKey("userID")
	ContextKeyRole   = contextKey("role")

	// AccessTokenCookieName is the HTTP-only cookie set by the web client.
	AccessTokenCookieName = "token"
)

// AuthMiddleware – for protected endpoints. If the token is missing or
// invalid, returns 401. The JWT is read from the "token" cookie, falling back
// to Authorization: Bearer.
func AuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractAccessToken(r)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), nil,
				)
				return
			}

			claims, vErr := ValidateToken(tokenStr, secret)
			if vErr != nil {
				respondInvalidToken(w, vErr)
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	s, ok := ctx.Value(ContextKeyUserID).(string)
	if !ok || s == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// RoleFromContext returns the role claim of the authenticated user. Tokens
// without a valid role claim yield ok=false.
func RoleFromContext(ctx context.Context) (models.Role, bool) {
	s, _ := ctx.Value(ContextKeyRole).(string)
	role, err := models.ParseRole(s)
	if err != nil {
		return "", false
	}
	return role, true
}

func withClaims(ctx context.Context, c *Claims) context.Context {
	ctx = context.WithValue(ctx, ContextKeyUserID, c.Subject)
	if c.Role != "" {
		ctx = context.WithValue(ctx, ContextKeyRole, c.Role)
	}
	return ctx
}

func respondInvalidToken(w http.ResponseWriter, err error) {
	if errors.Is(err, jwt.ErrTokenExpired) {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeTokenExpired, "Token expired", nil, err,
		)
		return
	}
	utils.RespondErrorWithCode(
		w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", nil, err,
	)
}

// helper: read the token from the cookie, or from Bearer
func extractAccessToken(r *http.Request) (string, error) {
	if c, err := r.Cookie(AccessTokenCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}

	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", errors.New("missing token cookie")
	}
	return strings.TrimPrefix(h, "Bearer "), nil
}
