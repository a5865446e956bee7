// Package httpapi is the routing layer: it parses requests, calls the
// services and shapes JSON responses. All business decisions live below it.
package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/aoyamagallery/backend/internal/metrics"
	"github.com/aoyamagallery/backend/internal/service/catalog"
	"github.com/aoyamagallery/backend/internal/service/order"
)

// RouterConfig carries the transport-level settings.
type RouterConfig struct {
	// AllowedOrigins enables CORS for the configured frontend. Empty means
	// no CORS middleware.
	AllowedOrigins []string
}

// NewRouter builds the gin engine with all middleware and routes registered.
func NewRouter(catalogSvc *catalog.Service, orderSvc *order.Service, m *metrics.GalleryMetrics, logger *log.Entry, cfg RouterConfig) *gin.Engine {
	if logger == nil {
		logger = log.WithField("component", "http")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(logger))
	router.Use(Metrics(m))

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	artworks := newArtworkHandler(catalogSvc, logger)
	orders := newOrderHandler(orderSvc, logger)

	api := router.Group("/api")
	api.GET("/artworks", artworks.list)
	api.GET("/artworks/:id", artworks.get)
	api.POST("/artworks/:id/sold", artworks.markSold)
	api.POST("/orders", orders.create)
	api.GET("/orders/:id", orders.get)

	return router
}
