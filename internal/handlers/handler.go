package handlers

import (
	"time"

	"wiki_system/internal/logger"
	"wiki_system/internal/service"
	"wiki_system/internal/session"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to the session controller, services and logging.
type Handler struct {
	services     *service.Service
	sessions     *session.Registry
	controller   *session.Controller
	log          *logger.Logger
	listInterval time.Duration
}

// Option customises a Handler.
type Option func(*Handler)

// WithListInterval sets the default push interval of the /ws/pages stream.
func WithListInterval(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 && d <= maxInterval {
			h.listInterval = d
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, sessions *session.Registry, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services:     services,
		sessions:     sessions,
		controller:   session.NewController(services.Credentials, services.Pages, log),
		log:          log,
		listInterval: defaultInterval,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	// A client obtains its session token here before anything else.
	router.POST("/sessions", h.createSession)

	// Recent-pages listing pushed over WebSocket.
	router.GET("/ws/pages", h.wsPages)

	h.registerSessionRoutes(router)

	return router
}

func (h *Handler) registerSessionRoutes(r *gin.Engine) {
	api := r.Group("/api/v1/session", h.sessionMiddleware)
	{
		api.GET("", h.getState)
		api.DELETE("", h.endSession)

		api.POST("/login", h.login)
		api.POST("/signup", h.signUp)
		api.POST("/logout", h.logout)
		api.POST("/show-login", h.showLogin)
		api.POST("/show-signup", h.showSignUp)
		api.POST("/navigate", h.navigate)

		h.registerPageRoutes(api)
	}
}

func (h *Handler) registerPageRoutes(api *gin.RouterGroup) {
	api.GET("/pages", h.listPages)
	api.GET("/pages/:title", h.getPage)
	// Body example: {"title":"Go","content":"..."}
	api.POST("/pages", h.createPage)
	api.POST("/pages/:title/edit", h.beginEdit)

	edit := api.Group("/edit")
	{
		edit.POST("/save", h.saveEdit)
		edit.POST("/cancel", h.cancelEdit)
	}
}
