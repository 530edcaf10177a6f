package routes

import (
	"net/http"
	"time"

	"osspace/internal/adminauth"
	"osspace/internal/bookings"
	"osspace/internal/classes"
	"osspace/internal/events"
	"osspace/internal/notifications"
	"osspace/internal/passes"
	"osspace/internal/payments"
	"osspace/internal/shared/config"
	"osspace/internal/shared/database"
	"osspace/internal/shared/middleware"
	"osspace/internal/spaces"
	"osspace/internal/uploads"
	"osspace/pkg/cache"
	"osspace/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router wires every feature package into the gin engine.
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer
	log      *logger.Logger
}

func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
		log:      log,
	}
}

// SetupRoutes configures all application routes.
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())

	db := r.db.GetPostgreSQL()

	var cacheService cache.Service
	if r.db.GetRedis() != nil {
		cacheService = cache.NewService(r.db.GetRedis())
	}

	// Admin session auth. The guard is shared by every admin group.
	authRepo := adminauth.NewRepository(db)
	authService := adminauth.NewService(authRepo, &r.config.Admin, r.log)
	authController := adminauth.NewController(
		authService,
		int(r.config.Admin.SessionTTL.Seconds()),
		r.config.GinMode == gin.ReleaseMode,
		r.log,
	)
	adminGuard := middleware.AdminAuth(authService)
	adminauth.SetupAuthRoutes(api, authController)

	// Inventory: class sessions and events, with cache-aside listings.
	classRepo := classes.NewRepository(db)
	classService := classes.NewService(classRepo)
	eventRepo := events.NewRepository(db)
	eventService := events.NewService(eventRepo)
	if cacheService != nil {
		classService.SetCacheService(cacheService, r.config.Redis.ListingCacheTTL)
		eventService.SetCacheService(cacheService, r.config.Redis.ListingCacheTTL)
	}
	classes.SetupClassRoutes(api, classes.NewController(classService), adminGuard)
	events.SetupEventRoutes(api, events.NewController(eventService), adminGuard)

	// Space rental requests.
	spaceRepo := spaces.NewRepository(db)
	spaceService := spaces.NewService(spaceRepo)
	spaces.SetupSpaceRoutes(api, spaces.NewController(spaceService), adminGuard)

	// Booking lifecycle engine.
	bookingRepo := bookings.NewRepository(db)
	bookingService := bookings.NewService(bookingRepo)
	spaceService.SetBookingSync(bookingService)
	bookings.SetupBookingRoutes(api, bookings.NewController(bookingService), adminGuard)

	// Event passes and check-in.
	passRepo := passes.NewRepository(db)
	passService := passes.NewService(passRepo, r.log)
	bookingService.SetPassReader(passService)
	passes.SetupPassRoutes(api, passes.NewController(passService), adminGuard)

	// Payments: simulated provider orders plus the dev confirmation hook.
	notificationService := notifications.NewService(db, r.producer, r.log)
	paymentRepo := payments.NewRepository(db, r.config.AppBaseURL, r.config.Upload.Path)
	paymentService := payments.NewService(paymentRepo, notificationService, r.config.Payment.KeyID, r.log)
	bookingService.SetPaymentReader(paymentService)
	paymentController := payments.NewController(paymentService)
	payments.SetupPaymentRoutes(api, paymentController)
	if r.config.Dev.AllowDevEndpoints {
		payments.SetupDevRoutes(api, paymentController, middleware.DevSecret(r.config.Dev.Secret))
	}
	notifications.SetupNotificationRoutes(api, notifications.NewController(notificationService), adminGuard)

	// Admin image uploads.
	uploadService := uploads.NewService(&r.config.Upload)
	uploads.SetupUploadRoutes(api, uploads.NewController(uploadService), adminGuard)
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "osspace-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "osspace-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}
