package handlers

import (
	"github.com/marcodesign21/chaset-tracker/internal/logger"
	"github.com/marcodesign21/chaset-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	// Request schemas are explicit; unknown JSON fields are a 400.
	binding.EnableDecoderDisallowUnknownFields = true
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services      *service.Service
	log           *logger.Logger
	metrics       *httpMetrics
	allowedOrigin string
}

// NewHandler constructs a new HTTP handler with dependencies. A nil log
// discards output.
func NewHandler(services *service.Service, log *logger.Logger, allowedOrigin string) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		services:      services,
		log:           log,
		metrics:       newHTTPMetrics(),
		allowedOrigin: allowedOrigin,
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger(), cors(h.allowedOrigin), h.metrics.middleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	router.GET("/metrics", h.metrics.handler())

	api := router.Group("/api")
	{
		h.registerAuthRoutes(api)
		h.registerTransactionRoutes(api)
		h.registerCredentialRoutes(api)
	}

	return router
}

func (h *Handler) registerAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.login)
	}
}

func (h *Handler) registerTransactionRoutes(api *gin.RouterGroup) {
	tx := api.Group("/transactions")
	{
		tx.GET("/:userId", h.listTransactions)
		tx.GET("/:userId/export", h.exportTransactions)
		tx.POST("", h.createTransaction)
		tx.DELETE("/:id", h.deleteTransaction)
	}
}

func (h *Handler) registerCredentialRoutes(api *gin.RouterGroup) {
	creds := api.Group("/credentials", vaultNotice)
	{
		creds.GET("/:userId", h.listCredentials)
		creds.POST("", h.createCredential)
		creds.DELETE("/:id", h.deleteCredential)
	}
}
