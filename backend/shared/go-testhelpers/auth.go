package testhelpers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-middleware"
	"github.com/road2tec/girha-setu-sub000/backend/shared/go-models"
	"github.com/stretchr/testify/require"
)

// MintToken signs an HS256 access token the way the external issuer does.
func MintToken(secret []byte, subject string, role models.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := middleware.Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    middleware.TokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// CreateJWT creates a 15-minute token for u.
func (h *TestHelper) CreateJWT(u *models.User) string {
	signed, err := MintToken(h.JWTSecret, u.ID.String(), u.Role, 15*time.Minute)
	require.NoError(h.T, err, "Failed to sign test JWT")
	return signed
}
