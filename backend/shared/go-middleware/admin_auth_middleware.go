package middleware

import (
	"net/http"

	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
)

// AdminAuthMiddleware validates a JWT and ensures it carries the admin role.
func AdminAuthMiddleware(secret []byte) func(http.Handler) http.Handler {
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

			ctx := withClaims(r.Context(), claims)
			if role, ok := RoleFromContext(ctx); !ok || !role.IsAdmin() {
				utils.RespondErrorWithCode(
					w, http.StatusForbidden, utils.ErrCodeForbidden, "Insufficient permissions", nil,
				)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
