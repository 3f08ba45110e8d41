// File: talentsync/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talentsync/config"
	"talentsync/database"
	meetingRepoPkg "talentsync/database/repository/meeting"
	slotRepoPkg "talentsync/database/repository/slot"
	userRepoPkg "talentsync/database/repository/user"
	"talentsync/handlers"
	"talentsync/middleware"
	"talentsync/routes"
	"talentsync/services/availability"
	"talentsync/services/calendar"
	ai "talentsync/services/intelligence"
	"talentsync/services/scheduling"
	"talentsync/services/user"
	"talentsync/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	meetingRepo := meetingRepoPkg.NewMongoMeetingRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	accountService := &user.DefaultAccountService{
		Repo:     userRepo,
		Meetings: meetingRepo,
		Slots:    slotRepo,
	}

	availabilityService := &availability.DefaultAvailabilityService{
		Repo:  slotRepo,
		Users: userRepo,
	}

	coordinator := &scheduling.BookingCoordinator{
		Slots:    slotRepo,
		Meetings: meetingRepo,
	}

	calendarService := calendar.NewService()
	if calendarService == nil {
		logger.Sugar().Info("main: calendar credentials not configured, calendar features disabled")
	}

	meetingService := &scheduling.DefaultMeetingService{
		Meetings:    meetingRepo,
		Slots:       slotRepo,
		Users:       userRepo,
		Coordinator: coordinator,
	}
	if calendarService != nil {
		meetingService.Calendar = calendarService
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:     userRepo,
		Auth:         handlers.NewAuthHandler(accountService),
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Meetings:     handlers.NewMeetingHandler(meetingService),
		Schedule:     handlers.NewScheduleHandler(accountService),
	}

	if config.AppConfig.GeminiAPIKey != "" {
		suggester := &ai.DefaultSuggester{
			Slots:    slotRepo,
			Meetings: meetingRepo,
			Gen:      ai.NewGeminiClient(config.AppConfig.GeminiAPIKey),
		}
		handlerBundle.Match = handlers.NewMatchHandler(suggester, meetingService)
	} else {
		logger.Sugar().Info("main: Gemini API key not configured, AI matching disabled")
	}

	if calendarService != nil {
		handlerBundle.Calendar = handlers.NewCalendarHandler(calendarService, userRepo)
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
