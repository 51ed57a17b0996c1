package response

import (
	"net/http"
	"strconv"

	"github.com/SyaefulEffendi/bahasaku-server/pkg/apperror"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uint, error) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return 0, apperror.ErrUnauthorized
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return 0, apperror.ErrUnauthorized
	}

	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		return 0, apperror.ErrUnauthorized
	}

	return uint(userID), nil
}

// Error renders a standardized error response
func Error(c *gin.Context, log *zap.Logger, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError && log != nil {
		log.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// ValidationError renders a 400 with a per-field message breakdown
func ValidationError(c *gin.Context, messages map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":    "validation error",
		"messages": messages,
	})
}
