package handler

import (
	"net/http"

	"hostpanel/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps the application error taxonomy onto HTTP statuses.
// Database failures are logged with full detail but surfaced to the caller
// only as a generic message.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var status int
	message := err.Error()

	switch apperr.KindOf(err) {
	case apperr.BadRequest:
		status = http.StatusBadRequest
	case apperr.Unauthorized:
		status = http.StatusUnauthorized
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.Database:
		logger.Error("Database error", zap.String("path", c.FullPath()), zap.Error(err))
		status = http.StatusInternalServerError
		message = "database error"
	default:
		logger.Error("Internal error", zap.String("path", c.FullPath()), zap.Error(err))
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{"error": message})
}
