package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/aoyamagallery/backend/internal/domain"
)

// respondError maps the domain error taxonomy onto HTTP statuses: validation
// and business-rule rejections are 400, absence is 404, everything else is a
// 500 whose root cause stays in the logs only.
func respondError(c *gin.Context, logger *log.Entry, err error) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "validation failed",
			"messages": validationErr.Messages(),
		})
	case errors.Is(err, domain.ErrArtworkSold):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrArtworkNotFound), errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.WithError(err).WithField("request_id", c.GetString(contextKeyRequest)).Error("request handling failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
