package handlers

import (
	"net/http"

	"todo_api/internal/logger"
	"todo_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies. A nil log discards output.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{services: services, log: log}
}

// Routes returns the router wrapped in the open CORS policy.
func (h *Handler) Routes() http.Handler {
	return cors.Handler(corsOptions())(h.InitRoutes())
}

// corsOptions permits every origin, method and header. Credentials stay off
// because browsers reject a wildcard origin together with credentials.
func corsOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodOptions, http.MethodHead,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader, "WWW-Authenticate"},
		AllowCredentials: false,
		MaxAge:           300,
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	router.NoRoute(func(c *gin.Context) {
		abortDetail(c, http.StatusNotFound, "Not Found")
	})
	router.NoMethod(func(c *gin.Context) {
		abortDetail(c, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	router.HandleMethodNotAllowed = true

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerTodoRoutes(router)
	h.registerActivityRoutes(router)

	// token may travel in the query string for websocket upgrades
	router.GET("/ws/lists", h.requireUser(true), h.wsLists)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.GET("/me", h.requireUser(false), h.me)
		auth.DELETE("/me", h.requireUser(false), h.deleteMe)
	}
}

func (h *Handler) registerTodoRoutes(r *gin.Engine) {
	lists := r.Group("/lists", h.requireUser(false))
	{
		lists.POST("/", h.createList)
		lists.GET("/", h.getLists)
		lists.GET("/:id", h.getList)
		lists.PATCH("/:id", h.updateList)
		lists.DELETE("/:id", h.deleteList)
		lists.POST("/:id/items/", h.createItem)
	}

	items := r.Group("/items", h.requireUser(false))
	{
		items.PATCH("/:id", h.updateItem)
		items.DELETE("/:id", h.deleteItem)
	}
}

func (h *Handler) registerActivityRoutes(r *gin.Engine) {
	activity := r.Group("/activity", h.requireUser(false))
	{
		activity.GET("/", h.getActivity)
	}
}

// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
