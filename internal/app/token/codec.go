package token

import (
	"errors"
	"time"

	customErrors "github.com/clipstream/clipstream/internal/domain/errors"
	domaintoken "github.com/clipstream/clipstream/internal/domain/token"
	"github.com/clipstream/clipstream/internal/infra/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type CodecImpl struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	audience      string
}

func NewCodec(cfg *config.Config) *CodecImpl {
	return &CodecImpl{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		issuer:        cfg.Issuer,
		audience:      cfg.Audience,
	}
}

func (c *CodecImpl) GenerateAccessToken(userID uuid.UUID, username string) (string, time.Time, error) {
	now := time.Now()

	claims := domaintoken.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
			ID:        uuid.NewString(),
		},
		Username: username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.accessSecret)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign access token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

func (c *CodecImpl) GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now()

	claims := domaintoken.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.refreshTTL)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.refreshSecret)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign refresh token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

func (c *CodecImpl) ValidateAccessToken(raw string) (domaintoken.AccessClaims, error) {
	claims := &domaintoken.AccessClaims{}
	if err := c.parse(raw, claims, c.accessSecret); err != nil {
		return domaintoken.AccessClaims{}, err
	}
	if err := c.checkIssuerAudience(claims.RegisteredClaims); err != nil {
		return domaintoken.AccessClaims{}, err
	}
	return *claims, nil
}

func (c *CodecImpl) ValidateRefreshToken(raw string) (domaintoken.RefreshClaims, error) {
	claims := &domaintoken.RefreshClaims{}
	if err := c.parse(raw, claims, c.refreshSecret); err != nil {
		return domaintoken.RefreshClaims{}, err
	}
	if err := c.checkIssuerAudience(claims.RegisteredClaims); err != nil {
		return domaintoken.RefreshClaims{}, err
	}
	return *claims, nil
}

// parse verifies the signature and the embedded expiry against the wall clock.
// No leeway: a token one second past exp is already expired.
func (c *CodecImpl) parse(raw string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrBadSignature
		}
		return secret, nil
	}, jwt.WithIssuedAt())

	switch {
	case err == nil && token.Valid:
		return nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return customErrors.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, customErrors.ErrBadSignature):
		return customErrors.ErrBadSignature
	default:
		return customErrors.ErrTokenMalformed
	}
}

func (c *CodecImpl) checkIssuerAudience(claims jwt.RegisteredClaims) error {
	if c.issuer != "" && claims.Issuer != c.issuer {
		return customErrors.ErrTokenMalformed
	}
	if c.audience != "" {
		ok := false
		for _, a := range claims.Audience {
			if a == c.audience {
				ok = true
				break
			}
		}
		if !ok {
			return customErrors.ErrTokenMalformed
		}
	}
	return nil
}
