package handlers

import (
	"net/http"
	"time"

	_ "blanket_warmer/docs"
	"blanket_warmer/internal/logger"
	"blanket_warmer/internal/service"
	"blanket_warmer/internal/view"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options carries the page settings the handlers need from configuration.
type Options struct {
	Title            string
	ReadingsInterval time.Duration // websocket gauge push period
}

// Handler wires HTTP layer to services, the page renderer and logging.
type Handler struct {
	services *service.Service
	view     *view.Renderer
	opts     Options
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, renderer *view.Renderer, opts Options, log *logger.Logger) *Handler {
	return &Handler{services: services, view: renderer, opts: opts, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Dashboard page and its assets
	h.registerPageRoutes(router)

	// Versioned API endpoints
	h.registerAPIRoutes(router)

	// Panel event channel (HTTP upgrade) on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerPageRoutes(r *gin.Engine) {
	r.GET("/chart.svg", h.chartSVG)
	if h.view != nil {
		r.GET("/", h.page)
		r.StaticFS("/static", http.FS(h.view.Static()))
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerPanelRoutes(api)
		h.registerReadingRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerPanelRoutes(api *gin.RouterGroup) {
	panels := api.Group("/panels/:id", h.panelMiddleware)
	{
		panels.GET("", h.getPanel)
		// Body example: {"value":70}
		panels.POST("/sliders/:name", h.setSlider)
		panels.POST("/power", h.togglePower)
	}
}

func (h *Handler) registerReadingRoutes(api *gin.RouterGroup) {
	readings := api.Group("/readings")
	{
		readings.GET("", h.getReadings)
		readings.GET("/history", h.getHistory)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("", h.getLogs)
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
