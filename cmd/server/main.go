package main

import (
	"log"

	"github.com/MrAlexGov/BuildCrew-Pro/internal/config"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/database"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/handlers"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/middleware"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/repository"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/services"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	objectRepo := repository.NewObjectRepository(db)
	crewRepo := repository.NewCrewRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	tokens := token.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo, objectRepo)
	objectService := services.NewObjectService(objectRepo, userRepo, crewRepo)
	crewService := services.NewCrewService(crewRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, objectRepo, crewRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	objectHandler := handlers.NewObjectHandler(objectService)
	crewHandler := handlers.NewCrewHandler(crewService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()

	// CORS for the dashboard frontend
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	requireAuth := middleware.RequireAuth(authService, tokens)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "BuildCrew Pro API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", requireAuth, authHandler.Refresh)
			auth.GET("/profile", requireAuth, authHandler.Profile)
			auth.POST("/change-password", requireAuth, authHandler.ChangePassword)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", userHandler.List)
			users.POST("", userHandler.Create)
			users.GET("/role/:role", userHandler.ListByRole)
			users.GET("/foreman/:foremanId/objects", userHandler.ForemanObjects)
			users.GET("/:id", userHandler.Get)
			users.PATCH("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
		}

		// Construction object routes (protected)
		objects := api.Group("/objects")
		objects.Use(requireAuth)
		{
			objects.GET("", objectHandler.List)
			objects.POST("", objectHandler.Create)
			objects.GET("/foreman/:foremanId", objectHandler.ListByForeman)
			objects.GET("/:id", objectHandler.Get)
			objects.PATCH("/:id", objectHandler.Update)
			objects.DELETE("/:id", objectHandler.Delete)
			objects.GET("/:id/tasks", objectHandler.Tasks)
			objects.GET("/:id/progress", objectHandler.Progress)
			objects.POST("/:id/crews/:crewId", objectHandler.AssignCrew)
			objects.DELETE("/:id/crews/:crewId", objectHandler.UnassignCrew)
		}

		// Crew routes (protected)
		crews := api.Group("/crews")
		crews.Use(requireAuth)
		{
			crews.GET("", crewHandler.List)
			crews.POST("", crewHandler.Create)
			crews.GET("/:id", crewHandler.Get)
			crews.PATCH("/:id", crewHandler.Update)
			crews.DELETE("/:id", crewHandler.Delete)
			crews.POST("/:id/members/:userId", crewHandler.AddMember)
			crews.DELETE("/:id/members/:userId", crewHandler.RemoveMember)
			crews.GET("/:id/members", crewHandler.Members)
			crews.GET("/:id/objects", crewHandler.Objects)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.List)
			tasks.POST("", taskHandler.Create)
			tasks.GET("/:id", taskHandler.Get)
			tasks.PATCH("/:id", taskHandler.Update)
			tasks.DELETE("/:id", taskHandler.Delete)
			tasks.POST("/:id/files", taskHandler.AddFile)
			tasks.GET("/:id/files", taskHandler.Files)
			tasks.DELETE("/:id/files/:fileId", taskHandler.DeleteFile)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
