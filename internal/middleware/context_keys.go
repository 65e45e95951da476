package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// actorIDKey is the key used to store the authenticated caller's id (the token subject).
const actorIDKey = contextKey("actorID")

// WithActorID returns a copy of ctx carrying the caller id.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDKey, actorID)
}

// GetActorIDFromContext retrieves the authenticated caller id from the Gin context.
// It returns nil when the request was not authenticated (auth disabled).
func GetActorIDFromContext(c *gin.Context) *string {
	if v, exists := c.Get(string(actorIDKey)); exists {
		if id, ok := v.(string); ok && id != "" {
			return &id
		}
	}
	if id, ok := c.Request.Context().Value(actorIDKey).(string); ok && id != "" {
		return &id
	}
	return nil
}
