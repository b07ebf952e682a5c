package routes

import (
	"time"

	"bookingflow/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes registers the booking session endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/widget/sessions")
	{
		api.POST("", hb.OpenSession)
		api.GET("/:id", hb.GetSession)
		api.DELETE("/:id", hb.CloseSession)
		api.POST("/:id/option", hb.ChooseOption)
		api.PATCH("/:id/form", hb.UpdateForm)
		api.POST("/:id/next", hb.NextStep)
		api.POST("/:id/back", hb.PreviousStep)
		api.GET("/:id/slots", hb.LoadSlots)
		api.POST("/:id/submit", hb.Submit)
	}
}

// RegisterCancellationRoutes registers the booking lookup and cancellation endpoints.
func RegisterCancellationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/widget/bookings")
	{
		api.GET("/:token", hb.LookupBooking)
		api.POST("/:token/cancel", hb.CancelBooking)
	}
}

// RegisterThemeRoutes registers the client theme endpoint.
func RegisterThemeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/widget/themes/:email", hb.GetClientTheme)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
// The widget is embedded on third-party sites, so origins come from config.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string) {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	RegisterSessionRoutes(r, hb)
	RegisterCancellationRoutes(r, hb)
	RegisterThemeRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
