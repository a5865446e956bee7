package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/aoyamagallery/backend/internal/domain"
	"github.com/aoyamagallery/backend/internal/service/catalog"
)

type artworkHandler struct {
	catalog *catalog.Service
	logger  *log.Entry
}

func newArtworkHandler(svc *catalog.Service, logger *log.Entry) *artworkHandler {
	return &artworkHandler{catalog: svc, logger: logger}
}

// list handles GET /api/artworks?featured=&sold=.
func (h *artworkHandler) list(c *gin.Context) {
	featured, err := parseBoolQuery(c, "featured")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sold, err := parseBoolQuery(c, "sold")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	artworks, err := h.catalog.GetAll(domain.ArtworkFilter{Featured: featured, Sold: sold})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, artworks)
}

// get handles GET /api/artworks/:id.
func (h *artworkHandler) get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	artwork, err := h.catalog.GetByID(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, artwork)
}

// markSold handles POST /api/artworks/:id/sold.
func (h *artworkHandler) markSold(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	artwork, err := h.catalog.MarkSold(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, artwork)
}

// parseBoolQuery reads an optional boolean query parameter. Absence means
// "no constraint"; a malformed value is rejected before it reaches a store.
func parseBoolQuery(c *gin.Context, name string) (*bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("query parameter %q must be true or false", name)
	}
	return &value, nil
}

// parseIDParam reads the :id path parameter, writing a 400 on garbage.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return id, true
}
