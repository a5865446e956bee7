package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/aoyamagallery/backend/internal/service/order"
)

type orderHandler struct {
	orders *order.Service
	logger *log.Entry
}

func newOrderHandler(svc *order.Service, logger *log.Entry) *orderHandler {
	return &orderHandler{orders: svc, logger: logger}
}

// create handles POST /api/orders.
func (h *orderHandler) create(c *gin.Context) {
	var input order.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be valid JSON"})
		return
	}

	created, err := h.orders.Create(input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// get handles GET /api/orders/:id.
func (h *orderHandler) get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	found, err := h.orders.GetByID(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, found)
}
