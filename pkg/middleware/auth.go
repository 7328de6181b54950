package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/delaynomics/delaynomics-api/config"
)

// AdminAuth authenticates requests to the admin API. Bearer tokens are
// checked before basic credentials; comparisons are constant time.
// When auth is disabled in config every request passes through.
func AdminAuth(cfg config.AdminAuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if cfg.Token != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if subtle.ConstantTimeCompare([]byte(token), []byte(cfg.Token)) == 1 {
				c.Next()
				return
			}
		}

		if cfg.Username != "" && cfg.Password != "" {
			username, password, hasAuth := c.Request.BasicAuth()
			if hasAuth {
				usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.Username)) == 1
				passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(cfg.Password)) == 1
				if usernameMatch && passwordMatch {
					c.Next()
					return
				}
			}
		}

		c.Header("WWW-Authenticate", `Basic realm="Admin API"`)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Unauthorized: valid credentials required for admin API access",
		})
	}
}
