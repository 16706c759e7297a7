package handlers

import (
	"net/http"
	"time"

	_ "aiot_brain/docs"
	"aiot_brain/internal/logger"
	"aiot_brain/internal/service"
	"aiot_brain/web"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options tunes request parsing and the WebSocket handshake.
type Options struct {
	// Location is the timezone of date-only query bounds. Nil means time.Local.
	Location *time.Location
	// AllowedOrigins lists browser origins accepted for WebSocket upgrades.
	// Empty or "*" accepts any origin.
	AllowedOrigins []string
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	loc      *time.Location
	upgrader websocket.Upgrader
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		services: services,
		log:      log,
		loc:      loc,
		upgrader: websocket.Upgrader{CheckOrigin: originChecker(opts.AllowedOrigins)},
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestID, h.observe)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", h.health)

	// Dashboard
	router.GET("/", h.index)
	router.StaticFS("/static", http.FS(web.Static()))

	h.registerAPIRoutes(router)

	router.GET("/ask", h.ask)
	router.GET("/ws/device/:id/latest", h.wsLatest)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/devices", h.listDevices)
		api.POST("/device", h.createDevice)
		api.GET("/analyses", h.listAnalyses)

		device := api.Group("/device/:id")
		{
			device.GET("/latest", h.latest)
			device.GET("/history", h.history)
			device.GET("/stats", h.stats)
		}
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

func (h *Handler) index(c *gin.Context) {
	page, err := web.Index()
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "index page unavailable", "index_read_failed", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}
