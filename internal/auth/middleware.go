package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Middleware attaches the caller identity when a valid bearer token is present.
// Requests without one pass through anonymous; operations decide whether that is allowed.
// The token may also come from the "token" query parameter so browser downloads work.
func Middleware(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			raw = c.Query("token")
		}
		if raw != "" {
			if id, err := tokens.Parse(raw); err == nil {
				c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
			}
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
