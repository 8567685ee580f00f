package routes

import (
	"time"

	"panditseva/handlers"
	"panditseva/middleware"
	"panditseva/models"
	"panditseva/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.HealthCheckHandler)
}

// RegisterDirectoryRoutes registers the public ritual and pandit endpoints.
func RegisterDirectoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/rituals", hb.Pandits.ListRitualsHandler)
		api.GET("/pandits", hb.Pandits.ListPanditsHandler)
		api.GET("/pandits/:id", hb.Pandits.GetPanditHandler)
		api.GET("/pandits/:id/offerings", hb.Pandits.GetOfferingsHandler)
		api.GET("/pandits/:id/slots", hb.Pandits.GetSlotsHandler)
		api.GET("/pandits/:id/dates", hb.Pandits.GetDatesHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))

	RegisterHealthRoute(r, hb)
	RegisterDirectoryRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPanditRoutes(r, hb)
	RegisterOpsRoutes(r, hb)
}

func authenticated(hb *handlers.HandlerBundle, role models.Role) []gin.HandlerFunc {
	return []gin.HandlerFunc{middleware.JWTAuthMiddleware(hb.Sessions), middleware.RequireRole(role)}
}
