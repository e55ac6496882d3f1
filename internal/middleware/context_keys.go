package middleware

import "github.com/gin-gonic/gin"

const (
	userIDKey    = contextKey("userID")
	theaterIDKey = contextKey("theaterID")
	roleIDKey    = contextKey("roleID")
)

// getStringFromContext looks a string value up in the Gin context first and
// falls back to the request context, which is where the auth middleware
// stores it.
func getStringFromContext(c *gin.Context, key contextKey) (string, bool) {
	if val, exists := c.Get(string(key)); exists {
		s, ok := val.(string)
		return s, ok
	}
	if val := c.Request.Context().Value(key); val != nil {
		s, ok := val.(string)
		return s, ok
	}
	return "", false
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return getStringFromContext(c, userIDKey)
}

// GetTheaterIDFromContext retrieves the token's theater scope from the Gin context.
func GetTheaterIDFromContext(c *gin.Context) (string, bool) {
	return getStringFromContext(c, theaterIDKey)
}

// GetRoleIDFromContext retrieves the token's role reference from the Gin context.
func GetRoleIDFromContext(c *gin.Context) (string, bool) {
	return getStringFromContext(c, roleIDKey)
}
