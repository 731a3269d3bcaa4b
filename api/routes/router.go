// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"ticketly/internal/admin"
	"ticketly/internal/auth"
	"ticketly/internal/events"
	"ticketly/internal/notifications"
	"ticketly/internal/orders"
	"ticketly/internal/seats"
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/database"
	"ticketly/internal/tickets"
	"ticketly/internal/tickettypes"
	"ticketly/internal/users"
	"ticketly/pkg/cache"
	"ticketly/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	log          *logger.Logger
	cacheService cache.Service
	notifier     *notifications.Service

	// Repositories shared across slices
	userRepo       users.Repository
	eventRepo      events.Repository
	ticketTypeRepo tickettypes.Repository
	seatRepo       seats.Repository
	orderRepo      orders.Repository
	ticketRepo     tickets.Repository
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, log *logger.Logger, notifier *notifications.Service) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		log:          log,
		cacheService: cache.NewService(db.GetRedisClient()),
		notifier:     notifier,

		userRepo:       users.NewRepository(db.GetPostgreSQL()),
		eventRepo:      events.NewRepository(db.GetPostgreSQL()),
		ticketTypeRepo: tickettypes.NewRepository(db.GetPostgreSQL()),
		seatRepo:       seats.NewRepository(db.GetPostgreSQL()),
		orderRepo:      orders.NewRepository(db.GetPostgreSQL()),
		ticketRepo:     tickets.NewRepository(db.GetPostgreSQL()),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupUserRoutes(api)
		r.setupEventRoutes(api)
		r.setupTicketTypeRoutes(api)
		r.setupSeatRoutes(api)
		r.setupOrderRoutes(api)
		r.setupTicketRoutes(api)
		r.setupAdminRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "ticketly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "ticketly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authService := auth.NewService(r.userRepo, r.config)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController)
}

func (r *Router) setupUserRoutes(rg *gin.RouterGroup) {
	userService := users.NewService(r.userRepo)
	userController := users.NewController(userService)

	users.SetupUserRoutes(rg, userController)
}

func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventService := events.NewService(r.eventRepo)
	eventService.SetCacheService(r.cacheService)
	eventController := events.NewController(eventService)

	events.SetupEventRoutes(rg, eventController)
}

func (r *Router) setupTicketTypeRoutes(rg *gin.RouterGroup) {
	ticketTypeService := tickettypes.NewService(r.ticketTypeRepo, r.eventRepo)
	ticketTypeController := tickettypes.NewController(ticketTypeService)

	tickettypes.SetupTicketTypeRoutes(rg, ticketTypeController)
}

func (r *Router) setupSeatRoutes(rg *gin.RouterGroup) {
	seatService := seats.NewService(r.seatRepo, r.eventRepo)
	seatService.SetCacheService(r.cacheService)
	seatController := seats.NewController(seatService)

	seats.SetupSeatRoutes(rg, seatController)
}

func (r *Router) setupOrderRoutes(rg *gin.RouterGroup) {
	// A nil *notifications.Service must not become a non-nil Notifier interface.
	var notifier orders.Notifier
	if r.notifier != nil {
		notifier = r.notifier
	}

	orderService := orders.NewService(r.orderRepo, notifier, r.log)
	orderController := orders.NewController(orderService)

	orders.SetupOrderRoutes(rg, orderController)
}

func (r *Router) setupTicketRoutes(rg *gin.RouterGroup) {
	ticketService := tickets.NewService(r.ticketRepo, r.log)
	ticketController := tickets.NewController(ticketService)

	tickets.SetupTicketRoutes(rg, ticketController)
}

func (r *Router) setupAdminRoutes(rg *gin.RouterGroup) {
	adminRepo := admin.NewRepository(r.db.GetPostgreSQL())
	adminService := admin.NewService(adminRepo, r.orderRepo, r.userRepo, r.eventRepo)
	adminService.SetCacheService(r.cacheService)
	adminController := admin.NewController(adminService)

	admin.SetupAdminRoutes(rg, adminController)
}
