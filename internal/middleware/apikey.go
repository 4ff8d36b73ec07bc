package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	appErrors "github.com/meridian-ins/claims-api/pkg/errors"
	"github.com/meridian-ins/claims-api/pkg/response"
)

// HeaderAPIKey carries the pre-shared credential on every request.
const HeaderAPIKey = "X-API-Key"

// APIKey rejects any request whose credential does not match the process-wide
// shared secret. It runs before any business logic; the comparison is
// constant-time.
func APIKey(key string) gin.HandlerFunc {
	secret := []byte(key)
	return func(c *gin.Context) {
		provided := []byte(c.GetHeader(HeaderAPIKey))
		if subtle.ConstantTimeCompare(provided, secret) != 1 {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}
