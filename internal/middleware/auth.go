package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/ipo_ledger/internal/apperrors"
	"github.com/SscSPs/ipo_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const codeUnauthorized = "UNAUTHORIZED"

// AuthMiddleware creates a Gin middleware handler that validates JWT bearer tokens.
// The subject claim is the user ID and the role claim decides admin access.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": codeUnauthorized, "error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": codeUnauthorized, "error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": codeUnauthorized, "error": msg})
			return
		}

		userID := claims.Subject
		if userID == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": codeUnauthorized, "error": "Invalid token claims"})
			return
		}
		role := claims.Role
		if role == "" {
			role = utils.RoleInvestor
		}

		enrichedLogger := logger.With(slog.String("user_id", userID), slog.String("role", role))
		ctx := WithUser(c.Request.Context(), userID, role)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))

		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated caller holds role.
// It must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserRoleFromContext(c) != role {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role check failed", slog.String("required_role", role))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": apperrors.CodeForbidden, "error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
