package main

import (
	"log"
	"time"

	"condo_manager/internal/config"
	"condo_manager/internal/database"
	"condo_manager/internal/handlers"
	"condo_manager/internal/jobs"
	"condo_manager/internal/middleware"
	"condo_manager/internal/redis"
	"condo_manager/internal/repository"
	"condo_manager/internal/services"
	"condo_manager/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init()
	defer logger.Sync()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	subtaskRepo := repository.NewSubtaskRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	gamificationRepo := repository.NewGamificationRepository(db)

	// Initialize services
	gamificationService := services.NewGamificationService(gamificationRepo, userRepo, redisClient, cfg.EarlyBonusMinutes, cacheTTL)
	authService := services.NewAuthService(userRepo, gamificationService, cfg.JWTSecret, time.Duration(cfg.SessionHours)*time.Hour)
	userService := services.NewUserService(userRepo, gamificationService)
	attendanceService := services.NewAttendanceService(attendanceRepo, userRepo, gamificationService, cfg.WorkStartMinutes)
	notificationService := services.NewNotificationService(notificationRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, notificationService)
	subtaskService := services.NewSubtaskService(subtaskRepo, taskRepo, notificationService, gamificationService)
	dashboardService := services.NewDashboardService(taskRepo, userRepo, attendanceRepo, gamificationService, redisClient, cacheTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.SessionHours)
	userHandler := handlers.NewUserHandler(userService, taskService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	taskHandler := handlers.NewTaskHandler(taskService)
	subtaskHandler := handlers.NewSubtaskHandler(subtaskService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, userService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	gamificationHandler := handlers.NewGamificationHandler(gamificationService)

	// Scheduled recurring-task generation
	recurringJob := jobs.NewRecurringTaskJob(taskService, cfg.RecurringCronSpec)
	if err := recurringJob.Start(); err != nil {
		log.Fatal("Failed to start recurring task job:", err)
	}
	defer recurringJob.Stop()

	// Setup routes
	router := gin.Default()
	router.Use(middleware.RequestLogger())

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/setup/check", authHandler.SetupCheck)
		}

		authed := api.Group("")
		authed.Use(middleware.RequireAuth(authService))
		{
			attendance := authed.Group("/attendance")
			{
				attendance.POST("/check-in", attendanceHandler.CheckIn)
				attendance.POST("/check-out", attendanceHandler.CheckOut)
				attendance.GET("/today", attendanceHandler.Today)
				attendance.POST("/close-active", middleware.RequireAdmin(), attendanceHandler.CloseActive)
				attendance.GET("/recent", middleware.RequireAdmin(), attendanceHandler.Recent)
			}

			tasks := authed.Group("/tasks")
			{
				tasks.GET("", taskHandler.List)
				tasks.POST("", middleware.RequireAdmin(), taskHandler.Create)
				tasks.GET("/:id", taskHandler.Get)
				tasks.DELETE("/:id", middleware.RequireAdmin(), taskHandler.Delete)
				tasks.POST("/generate-recurring", middleware.RequireAdmin(), taskHandler.GenerateRecurring)
			}

			authed.POST("/subtasks/:id/complete", subtaskHandler.Complete)

			notifications := authed.Group("/notifications")
			{
				notifications.GET("", notificationHandler.List)
				notifications.POST("", middleware.RequireAdmin(), notificationHandler.Create)
				notifications.PATCH("/:id", notificationHandler.MarkRead)
				notifications.DELETE("/:id", notificationHandler.Delete)
			}

			dashboard := authed.Group("/dashboard")
			{
				dashboard.GET("/stats", dashboardHandler.Stats)
				dashboard.GET("/critical-tasks", middleware.RequireAdmin(), dashboardHandler.CriticalTasks)
				dashboard.GET("/workers", middleware.RequireAdmin(), dashboardHandler.Workers)
			}

			gamification := authed.Group("/gamification")
			{
				gamification.GET("/stats", middleware.RequireWorker(), gamificationHandler.Stats)
				gamification.GET("/leaderboard", middleware.RequireAdmin(), gamificationHandler.Leaderboard)
			}

			users := authed.Group("/users")
			users.Use(middleware.RequireAdmin())
			{
				users.GET("", userHandler.List)
				users.POST("/create", userHandler.Create)
				users.GET("/:id", userHandler.Get)
				users.PUT("/:id", userHandler.Update)
				users.DELETE("/:id", userHandler.Delete)
				users.GET("/:id/tasks", userHandler.Tasks)
			}

			// Profile edits are open to the user itself, not only admins
			authed.PATCH("/users/:id/profile", userHandler.UpdateProfile)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
