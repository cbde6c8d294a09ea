package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AccessClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

type RefreshClaims struct {
	jwt.RegisteredClaims
}

// Codec signs and verifies the two token classes. Access and refresh tokens use
// independent secrets and TTLs, so a leaked key compromises only one class.
type Codec interface {
	GenerateAccessToken(userID uuid.UUID, username string) (token string, exp time.Time, err error)
	GenerateRefreshToken(userID uuid.UUID) (token string, exp time.Time, err error)
	ValidateAccessToken(token string) (AccessClaims, error)
	ValidateRefreshToken(token string) (RefreshClaims, error)
}
