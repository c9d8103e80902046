package auth

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/gin-gonic/gin"
)

type contextKey struct{}

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "user_id"

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// GetUserID returns the authenticated user id carried by ctx, or "".
func GetUserID(ctx context.Context) string {
	if val, ok := ctx.Value(contextKey{}).(string); ok {
		return val
	}
	return ""
}

// CallerID is the audit actor of the current request; nil when anonymous.
func CallerID(c *gin.Context) *string {
	if id := c.GetString(UserIDKey); id != "" {
		return model.CallerID(id)
	}
	return model.CallerID(GetUserID(c.Request.Context()))
}
