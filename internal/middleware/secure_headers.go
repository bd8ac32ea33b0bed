package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecureHeaders marks every response as non-embeddable JSON that must not be cached.
func SecureHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		if c.Request.Method != "GET" {
			h.Set("Cache-Control", "no-store")
		}
		c.Next()
	}
}
