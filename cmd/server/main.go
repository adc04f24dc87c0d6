package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/foxxcyber/pantry-chef/internal/config"
	"github.com/foxxcyber/pantry-chef/internal/database"
	"github.com/foxxcyber/pantry-chef/internal/handlers"
	"github.com/foxxcyber/pantry-chef/internal/middleware"
	"github.com/foxxcyber/pantry-chef/internal/pantry"
	"github.com/foxxcyber/pantry-chef/internal/services"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create demo user if it doesn't exist
	if err := database.EnsureDemoUser(db, cfg); err != nil {
		log.Printf("Warning: Could not ensure demo user: %v", err)
	}

	// Initialize recipe generation (optional, needs an API key)
	var generator pantry.Generator
	if gen, err := services.NewRecipeGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel); err != nil {
		log.Printf("Recipe generation disabled: %v", err)
	} else {
		generator = gen
	}

	suggester := pantry.NewSuggester(generator, cfg.SuggestDebounce)
	pantrySvc := pantry.NewService(db, suggester)

	// Initialize chef chat (falls back to canned replies without a key)
	chatSvc, err := services.NewChefChatService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if err != nil {
		log.Fatalf("Failed to initialize chef chat: %v", err)
	}

	// Initialize image storage (optional, needs S3 credentials)
	var storageSvc *services.StorageService
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		storageSvc, err = services.NewStorageService(
			cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL,
		)
		if err != nil {
			log.Printf("Warning: Failed to initialize storage service: %v", err)
			storageSvc = nil
		} else if err := storageSvc.EnsureBucket(context.Background()); err != nil {
			log.Printf("Warning: Failed to ensure S3 bucket exists: %v", err)
		}
	} else {
		log.Println("S3 credentials not configured, image uploads disabled")
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Create handler with dependencies
	h := handlers.New(db, cfg, pantrySvc, chatSvc, storageSvc)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API routes
	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Get("/me", middleware.AuthRequired(cfg), h.GetCurrentUser)
	auth.Post("/refresh", middleware.AuthRequired(cfg), h.RefreshToken)

	// Pantry routes (authenticated)
	pantryRoutes := api.Group("/pantry", middleware.AuthRequired(cfg))
	pantryRoutes.Get("/", h.ListProducts)
	pantryRoutes.Post("/", h.CreateProduct)
	pantryRoutes.Get("/summary", h.GetPantrySummary)
	pantryRoutes.Get("/recipes", h.GetRecipes)
	pantryRoutes.Post("/recipes/reset", h.ResetRecipes)
	pantryRoutes.Post("/cook", h.CookRecipe)
	pantryRoutes.Post("/images", h.UploadProductImage)
	pantryRoutes.Delete("/:id", h.DeleteProduct)

	// Barcode lookup (authenticated)
	api.Get("/barcode/:code", middleware.AuthRequired(cfg), h.LookupBarcode)

	// Chef chat (authenticated)
	api.Post("/chat", middleware.AuthRequired(cfg), h.Chat)

	// Prometheus metrics on a separate listener
	go startMetricsServer(cfg.MetricsPort)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

func startMetricsServer(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("Metrics server starting on port %s", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
