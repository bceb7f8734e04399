package middleware

import "github.com/gin-gonic/gin"

// SecurityHeadersMiddleware only lets the board be framed by its own pages,
// disables DNS prefetching and only sends the referrer to the same origin.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("X-DNS-Prefetch-Control", "off")
		h.Set("Referrer-Policy", "same-origin")
		h.Set("X-Content-Type-Options", "nosniff")
		c.Next()
	}
}
