package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated expert or admin ID.
const userIDKey = contextKey("userID")

// roleKey is the key used to store the role claim of the token.
const roleKey = contextKey("role")

// RoleAdmin is the role claim value granting the admin console.
const RoleAdmin = "admin"

// WithIdentity returns a copy of ctx carrying the authenticated identity.
func WithIdentity(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// IsAdmin reports whether the authenticated token carries the admin role.
func IsAdmin(c *gin.Context) bool {
	role, _ := c.Request.Context().Value(roleKey).(string)
	return role == RoleAdmin
}
