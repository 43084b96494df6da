package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/tax_engagement_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error to an HTTP status and writes it.
// Unexpected errors are logged and reported with the generic fallback message.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var ve *apperrors.ValidationError
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &ve):
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": ve.Fields})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500:
		logger.Warn("Request rejected", slog.String("error", err.Error()))
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
