package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	apiCSP = "default-src 'none'"
	// stored images are opened directly by browsers
	uploadsCSP = "default-src 'none'; img-src 'self'"
	// upload names carry a fresh uuid, so a given URL never changes content
	uploadsCacheControl = "public, max-age=31536000, immutable"
)

// SecurityHeaders sets hardening headers on every response. Paths under
// uploadsPrefix get a CSP that lets images render and long-lived caching.
func SecurityHeaders(uploadsPrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")

		if uploadsPrefix != "" && strings.HasPrefix(c.Request.URL.Path, uploadsPrefix) {
			c.Header("Content-Security-Policy", uploadsCSP)
			c.Header("Cache-Control", uploadsCacheControl)
		} else {
			c.Header("Content-Security-Policy", apiCSP)
		}

		c.Next()
	}
}
