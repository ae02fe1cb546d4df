package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/service"
	"go.uber.org/zap"
)

// respondError maps the error taxonomy onto HTTP statuses. Store and
// unknown failures surface as a generic 500 with no internal detail.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var ae *apperr.Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case apperr.KindValidation:
			c.JSON(http.StatusBadRequest, gin.H{"error": ae.Message()})
			return
		case apperr.KindNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": ae.Message()})
			return
		case apperr.KindForbidden:
			c.JSON(http.StatusForbidden, gin.H{"error": ae.Message()})
			return
		case apperr.KindConflict:
			c.JSON(http.StatusConflict, gin.H{"error": ae.Message()})
			return
		}
	}

	logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
