package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ipo_ledger/internal/apperrors"
	"github.com/SscSPs/ipo_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code  apperrors.ErrorCode `json:"code"`
	Error string              `json:"error"`
}

// respondError maps err to its status and code. Internal failures are logged and
// replaced with fallback so no infrastructure detail leaks to the caller.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code, status := apperrors.Classify(err)

	if code == apperrors.CodeInternal {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: code, Error: fallback})
		return
	}

	if apperrors.IsRetryable(err) {
		logger.Warn("Transaction conflict, client may retry", slog.String("error", err.Error()))
		c.Header("Retry-After", "1")
	} else {
		logger.Debug("Request rejected", slog.String("code", string(code)), slog.String("error", err.Error()))
	}
	c.JSON(status, ErrorResponse{Code: code, Error: err.Error()})
}

// respondBindError reports malformed input.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Code: apperrors.CodeValidation, Error: "Invalid request format: " + err.Error()})
}

// requireUserID reads the authenticated user; it writes 401 and returns false when absent.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "UNAUTHORIZED", Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
