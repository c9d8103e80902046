package auth

import (
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func setUser(c *gin.Context, userID string) {
	c.Set(UserIDKey, userID)
	c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), userID))
}

// Optional attaches the caller when a valid bearer token is present and
// lets anonymous requests through.
func Optional(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearerToken(c); raw != "" {
			if userID, err := tm.Parse(raw); err == nil {
				setUser(c, userID)
			}
		}
		c.Next()
	}
}

// Require rejects requests without a valid bearer token.
func Require(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			response.Unauthorized(c, "No token provided")
			return
		}

		userID, err := tm.Parse(raw)
		if err != nil {
			response.Unauthorized(c, "Invalid token")
			return
		}

		setUser(c, userID)
		c.Next()
	}
}
