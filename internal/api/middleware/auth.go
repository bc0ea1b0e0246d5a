package middleware

import (
	"net/http"
	"strings"

	"solarsmart/internal/auth"

	"github.com/gin-gonic/gin"
)

type Authenticator interface {
	Authenticate(token string) error
}

// RequireAdmin accepts a bearer token, falling back to the session cookie.
func RequireAdmin(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			if cookie, err := c.Cookie(auth.SessionCookie); err == nil {
				token = cookie
			}
		}
		if token == "" || a.Authenticate(token) != nil {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
