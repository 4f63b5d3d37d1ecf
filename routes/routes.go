package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"checkin-guide/auth"
	"checkin-guide/config"
	"checkin-guide/controllers"
	"checkin-guide/logger"
	"checkin-guide/middleware"
)

// Handlers are the controllers the router dispatches to.
type Handlers struct {
	Apartments *controllers.ApartmentController
	Bookings   *controllers.BookingController
	Guests     *controllers.GuestController
	Media      *controllers.MediaController
	Links      *controllers.LinkController
	Bulk       *controllers.BulkController
	Auth       *controllers.AuthController
	Validation *controllers.ValidationController
}

// Options carry what the router needs besides the handlers.
type Options struct {
	Security   config.SecurityConfig
	Auth       config.AuthConfig
	Gate       auth.Options
	UploadDir  string // served when media is stored locally
	PublicPath string
}

func corsConfig(origins []string) cors.Config {
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

func SetupRouter(h Handlers, opts Options, lg *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(lg))
	r.Use(cors.New(corsConfig(opts.Security.CorsOrigins)))

	store := cookie.NewStore([]byte(opts.Auth.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.Auth.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   opts.Auth.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(opts.Auth.CookieName, store))

	if opts.Security.RateLimitEnabled {
		r.Use(middleware.RateLimit(opts.Security.RateLimitPerMinute, opts.Security.RateLimitBurstSize, lg))
	}
	r.Use(middleware.SecurityHeaders())

	if opts.UploadDir != "" {
		r.Static(opts.PublicPath, opts.UploadDir)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/guide/:apartmentId", h.Links.Guide)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", h.Auth.Login)
			authRoutes.GET("/check", h.Auth.Check)
			authRoutes.POST("/logout", h.Auth.Logout)
		}

		manager := api.Group("/manager", middleware.RequireManager(opts.Gate, lg))
		{
			apartments := manager.Group("/apartments")
			{
				apartments.GET("", h.Apartments.List)
				// before /:id
				apartments.GET("/complexes", h.Apartments.HousingComplexes)
				apartments.GET("/:id", h.Apartments.Get)
				apartments.POST("", h.Apartments.Create)
				apartments.PATCH("/:id", h.Apartments.Update)
				apartments.DELETE("/:id", h.Apartments.Delete)
				apartments.GET("/:id/copy-targets", h.Apartments.CopyTargets)
				apartments.GET("/:id/media", h.Media.List)
				apartments.POST("/:id/media", h.Media.Upload)
			}

			bulk := manager.Group("/bulk")
			{
				bulk.POST("/mass-update", h.Bulk.MassUpdate)
				bulk.POST("/copy-settings", h.Bulk.CopySettings)
			}

			bookings := manager.Group("/bookings")
			{
				bookings.GET("", h.Bookings.List)
				bookings.GET("/:id", h.Bookings.Get)
				bookings.POST("", h.Bookings.Create)
				bookings.PATCH("/:id", h.Bookings.Update)
				bookings.DELETE("/:id", h.Bookings.Delete)
				bookings.POST("/:id/link", h.Links.ForBooking)
			}

			guests := manager.Group("/guests")
			{
				guests.GET("", h.Guests.List)
				guests.POST("", h.Guests.Create)
				guests.DELETE("/:id", h.Guests.Delete)
			}

			manager.DELETE("/media/:id", h.Media.Delete)
			manager.POST("/links", h.Links.Generate)
			manager.POST("/validate/:form", h.Validation.Check)
		}
	}

	return r
}
