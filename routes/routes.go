package routes

import (
	"net/http"
	"time"

	"talentsync/config"
	"talentsync/handlers"
	"talentsync/middleware"
	"talentsync/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/logout", hb.Auth.Logout)
		api.GET("/me", hb.Auth.Me)
	}
}

// RegisterAvailabilityRoutes registers slot management endpoints. Candidates
// manage their own slots; recruiters get the read-only public view.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/slots")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("", middleware.RequireRole(models.RoleCandidate), hb.Availability.ListOwn)
		api.POST("", middleware.RequireRole(models.RoleCandidate), hb.Availability.AddSlots)
		api.DELETE("/:id", middleware.RequireRole(models.RoleCandidate), hb.Availability.DeleteSlot)
	}
}

// RegisterMeetingRoutes registers the booking endpoints.
func RegisterMeetingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/meetings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", middleware.RequireRole(models.RoleRecruiter), hb.Meetings.Create)
		api.GET("", hb.Meetings.List)
		api.GET("/:id", hb.Meetings.Get)
		api.PATCH("/:id", middleware.RequireRole(models.RoleRecruiter), hb.Meetings.Update)
		api.DELETE("/:id", hb.Meetings.Cancel)
		api.POST("/:id/complete", middleware.RequireRole(models.RoleRecruiter), hb.Meetings.Complete)
	}
}

// RegisterScheduleRoutes registers the recruiter-facing candidate directory.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/candidates")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleRecruiter))
		api.GET("", hb.Schedule.ListCandidates)
		api.GET("/:id", hb.Schedule.GetCandidate)
		api.GET("/:id/availability", hb.Availability.GetCandidateAvailability)
	}
}

// RegisterAIRoutes registers AI endpoints.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ai")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleRecruiter))
		api.POST("/match", hb.Match.Match)
	}
}

// RegisterCalendarRoutes registers calendar connect and listing endpoints.
// The OAuth callback stays public; the provider redirects the browser there
// without our auth header, and the signed state carries the identity instead.
func RegisterCalendarRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/calendar")
	{
		api.GET("/callback", hb.Calendar.Callback)

		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/connect", hb.Calendar.Connect)
		api.GET("/events", hb.Calendar.Events)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm TalentSync"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := []string{"*"}
	if config.AppConfig.FrontendURL != "" {
		origins = []string{config.AppConfig.FrontendURL}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterMeetingRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterHealthRoute(r)
	if hb.Match != nil {
		RegisterAIRoutes(r, hb)
	}
	if hb.Calendar != nil {
		RegisterCalendarRoutes(r, hb)
	}
}
