// internal/web/auth.go
package web

import (
	"crypto/subtle"
	"net/http"

	"adcraft/internal/common/config"

	"github.com/gin-gonic/gin"
)

// basicAuth protects the API routes when credentials are configured.
// With no password set, auth is disabled and every request passes.
func basicAuth(cfg config.WebConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.AuthPassword == "" {
			c.Next()
			return
		}

		user, pass, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(user), []byte(cfg.AuthUser)) != 1 ||
			subtle.ConstantTimeCompare([]byte(pass), []byte(cfg.AuthPassword)) != 1 {
			c.Header("WWW-Authenticate", `Basic realm="adcraft"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}
