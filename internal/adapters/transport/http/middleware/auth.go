package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/clipstream/clipstream/internal/domain/model"
	"github.com/gin-gonic/gin"
)

const principalKey = "clipstream.principal"

// AccessTokenCookie is where the guard looks first; the Authorization header
// is the fallback for non-cookie clients.
const AccessTokenCookie = "access_token"

type validator interface {
	Validate(ctx context.Context, accessToken string) (model.User, error)
}

// RequireAuth rejects the request with 401 unless a valid access token is
// presented. Expired, malformed and tampered tokens all get the same answer.
func RequireAuth(svc validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(AccessTokenCookie)
		if err != nil || raw == "" {
			raw = bearerToken(c.GetHeader("Authorization"))
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized request"})
			return
		}

		user, err := svc.Validate(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(principalKey, model.Principal{
			UserID:   user.ID,
			Username: user.Username,
			User:     user,
		})
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// Principal returns the identity resolved by RequireAuth. The bool is false on
// routes that skipped the guard.
func Principal(c *gin.Context) (model.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	p, ok := v.(model.Principal)
	return p, ok
}
