package middleware

import (
	"context"

	"github.com/SscSPs/ipo_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = contextKey("userID")
	userRoleKey = contextKey("userRole")
)

// WithUser returns a copy of ctx carrying the authenticated user and role.
func WithUser(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
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

// GetUserRoleFromContext returns the caller's role, defaulting to investor.
func GetUserRoleFromContext(c *gin.Context) string {
	role, ok := c.Request.Context().Value(userRoleKey).(string)
	if !ok || role == "" {
		return utils.RoleInvestor
	}
	return role
}
