package handlers

import (
	"todoapp/internal/logger"
	"todoapp/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger

	// secureCookies enables the Secure cookie attribute; on only in
	// production-like environments so local HTTP still works.
	secureCookies bool
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, secureCookies bool) *Handler {
	return &Handler{services: services, log: log, secureCookies: secureCookies}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		// Auth endpoints (anonymous)
		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.POST("/logout", h.logout)

		// Todo endpoints (session required)
		h.registerTodoRoutes(api)
	}

	return router
}

func (h *Handler) registerTodoRoutes(api *gin.RouterGroup) {
	todos := api.Group("/todos", h.sessionMiddleware)
	{
		todos.GET("", h.listTodos)
		todos.POST("", h.createTodo)
		todos.PATCH("/:id", h.updateTodo)
		todos.DELETE("/:id", h.deleteTodo)
	}
}
