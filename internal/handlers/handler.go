package handlers

import (
	"solar_cleaner/internal/logger"
	"solar_cleaner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options tunes the HTTP layer.
type Options struct {
	// AuthEnabled puts /api behind the bearer token middleware.
	AuthEnabled bool
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Options) *Handler {
	h := &Handler{services: services, log: log}
	if len(opts) > 0 {
		h.opts = opts[0]
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.dashboardPage)
	router.GET("/health", h.health)
	router.GET("/metrics", h.metricsHandler())

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Dashboard stream over WebSocket on the same port
	if h.opts.AuthEnabled {
		router.GET("/ws", h.userIdMiddleware, h.wsConnect)
	} else {
		router.GET("/ws", h.wsConnect)
	}

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	if h.opts.AuthEnabled {
		api.Use(h.userIdMiddleware)
	}
	{
		api.GET("/dashboard", h.getDashboard)
		h.registerCleanerRoutes(api)
		h.registerBatchRoutes(api)
		h.registerScheduleRoutes(api)
		api.GET("/events", h.getEvents)
	}
}

func (h *Handler) registerCleanerRoutes(api *gin.RouterGroup) {
	cleaner := api.Group("/cleaner")
	{
		// Body: {"state": true}
		cleaner.POST("/toggle", h.toggleCleaner)
		// Body: {"active": false}
		cleaner.POST("/active", h.setActive)
		cleaner.GET("/state", h.getState)
	}
}

func (h *Handler) registerBatchRoutes(api *gin.RouterGroup) {
	batches := api.Group("/batches")
	{
		batches.GET("", h.listBatches)
		batches.GET("/:id", h.getBatch)
		batches.POST("", h.ingestBatch)
	}
}

func (h *Handler) registerScheduleRoutes(api *gin.RouterGroup) {
	schedule := api.Group("/schedule")
	{
		schedule.GET("", h.getSchedule)
		schedule.PUT("", h.replaceSchedule)
		schedule.POST("", h.addScheduleItem)
		schedule.DELETE("/:index", h.deleteScheduleItem)
	}
}

// metricsHandler exposes the cleaner collector on a dedicated registry.
func (h *Handler) metricsHandler() gin.HandlerFunc {
	registry := prometheus.NewRegistry()
	registry.MustRegister(newCleanerCollector(h.services, h.log))
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
