package api

import (
	"time" // CORS max age

	"estate_crm/internal/middleware" // JWT and profile middleware

	"github.com/gin-contrib/cors"  // Browser CORS support
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter wires every endpoint under /api. Properties are public, leads
// and flats require a session token and a resolved profile.
func NewRouter(db *gorm.DB, rdb *redis.Client, jwtSecret, corsOrigin string) *gin.Engine {
	r := gin.Default() // Gin router instance

	// CORS for the browser frontend
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	apiGroup := r.Group("/api")

	// Public endpoints
	apiGroup.GET("/hello", HelloHandler())                        // Liveness probe
	apiGroup.POST("/auth/login", LoginHandler(db, jwtSecret))     // Login endpoint
	apiGroup.GET("/properties", ListPropertiesHandler(db, rdb))   // Public listing
	apiGroup.POST("/properties", CreatePropertyHandler(db, rdb))  // Create listing
	apiGroup.GET("/properties/:id", GetPropertyHandler(db))       // Listing detail
	apiGroup.PUT("/properties/:id", UpdatePropertyHandler(db, rdb))   // Replace listing
	apiGroup.DELETE("/properties/:id", DeletePropertyHandler(db, rdb)) // Remove listing

	// Authenticated endpoints (session token + resolved profile)
	authed := apiGroup.Group("")
	authed.Use(middleware.JWTAuthMiddleware(jwtSecret), middleware.ProfileMiddleware(db))

	authed.GET("/auth/me", MeHandler()) // Own profile

	// Lead routes, scoped per role
	authed.GET("/leads", ListLeadsHandler(db))
	authed.POST("/leads", CreateLeadHandler(db))
	authed.GET("/leads/:id", GetLeadHandler(db))
	authed.PUT("/leads/:id", UpdateLeadHandler(db))
	authed.PATCH("/leads/:id", PatchLeadHandler(db))
	authed.DELETE("/leads/:id", DeleteLeadHandler(db))
	authed.PATCH("/leads/:id/status", UpdateLeadStatusHandler(db))     // Status transition
	authed.PATCH("/leads/:id/followup", UpdateLeadFollowUpHandler(db)) // Reschedule follow-up

	// Flat routes, scoped per role
	authed.GET("/flats", ListFlatsHandler(db))
	authed.POST("/flats", CreateFlatHandler(db))
	authed.GET("/flats/:id", GetFlatHandler(db))
	authed.PUT("/flats/:id", UpdateFlatHandler(db))
	authed.DELETE("/flats/:id", DeleteFlatHandler(db))

	return r
}
