package middleware

import "github.com/gin-gonic/gin"

// contextKey is a custom type for request context keys.
// Using a custom type prevents collisions.
type contextKey string

const loggerCtxKey = contextKey("logger")

// userIDKey is the key used to store the authenticated user's ID in the Gin context.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if v := c.Request.Context().Value(userIDKey); v != nil {
			if id, ok := v.(int64); ok {
				return id, true
			}
		}
		return 0, false
	}

	userID, ok := userIDVal.(int64)
	if !ok {
		return 0, false
	}
	return userID, true
}
