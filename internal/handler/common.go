package handler

import (
	"errors"
	"net/http"

	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"
	"github.com/mars1-events-planning/eventool-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// handleError 依錯誤代碼決定 HTTP 狀態碼
func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	var validationErr *apperrors.ValidationError
	switch apperrors.Code(err) {
	case apperrors.CodeValidation:
		log.Warn("Validation failed")
		body := gin.H{"error": "Validation failed."}
		if errors.As(err, &validationErr) {
			body["validationErrors"] = validationErr.Errors
		}
		c.JSON(http.StatusBadRequest, body)
	case apperrors.CodeInvalidInput:
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case apperrors.CodeNotFound:
		log.Warn("Resource not found")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.CodeUnauthenticated:
		log.Warn("Unauthenticated")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case apperrors.CodeUnauthorized:
		log.Warn("Forbidden")
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case apperrors.CodeConflict:
		log.Warn("Concurrent update")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
