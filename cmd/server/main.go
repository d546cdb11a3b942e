package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"panotour/internal/config"
	"panotour/internal/database"
	"panotour/internal/filestore"
	"panotour/internal/handlers"
	"panotour/internal/logging"
	"panotour/internal/middleware"
	"panotour/internal/preflight"
	"panotour/internal/services"
	"panotour/pkg/auth"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	log.Println("🚀 Starting Panotour Server...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Printf("📋 Configuration loaded (Port: %s, Static: %s)", cfg.Port, cfg.StaticDir)

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	store, err := filestore.New(cfg.StaticDir)
	if err != nil {
		log.Fatalf("❌ Failed to prepare asset directories: %v", err)
	}

	checker := preflight.NewChecker(db, store)
	if preflight.HasFailures(checker.RunAll()) {
		log.Fatal("❌ Pre-flight checks failed, refusing to start")
	}

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		// Tokens issued with an ephemeral secret die with the process
		jwtSecret = uuid.NewString() + uuid.NewString()
		log.Println("⚠️  JWT_SECRET not set - using an ephemeral secret (development mode)")
	}
	jwtAuth, err := auth.NewLocalJWTAuth(jwtSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("❌ Failed to initialize JWT authentication: %v", err)
	}
	log.Printf("✅ Local JWT authentication initialized (ttl: %v)", cfg.TokenTTL)

	iconService := services.NewIconService(db, store)
	syncCtx, cancelSync := context.WithTimeout(context.Background(), 30*time.Second)
	inserted, deleted, err := iconService.SyncSystemIcons(syncCtx)
	cancelSync()
	if err != nil {
		log.Fatalf("❌ Failed to sync system icons: %v", err)
	}
	log.Printf("🎨 [ICONS] System icons synced (%d added, %d removed)", inserted, deleted)

	app := fiber.New(fiber.Config{
		AppName:      "Panotour v1.0",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    cfg.MaxUploadMB * 1024 * 1024,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())

	// Prometheus metrics middleware
	prometheus := fiberprometheus.New("panotour")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)
	log.Println("📊 Prometheus metrics endpoint enabled at /metrics")

	// Fiber's CORS middleware does not allow AllowCredentials with wildcard origins
	allowCredentials := cfg.AllowedOrigins != "*"
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: allowCredentials,
	}))
	log.Printf("🔒 [SECURITY] CORS allowed origins: %s", cfg.AllowedOrigins)

	rateLimits := middleware.NewRateLimitConfig(cfg.RateLimitAuth, cfg.RateLimitUpload)
	log.Printf("🛡️  [RATE-LIMIT] Auth=%d/min per IP, Upload=%d/min per user", rateLimits.AuthMax, rateLimits.UploadMax)

	registerRoutes(app, routeDeps{
		db:          db,
		store:       store,
		jwtAuth:     jwtAuth,
		iconService: iconService,
		rateLimits:  rateLimits,
	})

	log.Printf("✅ Server ready on port %s", cfg.Port)
	log.Printf("📡 Health check: http://localhost:%s/health", cfg.Port)
	log.Printf("🖼️  Static assets: http://localhost:%s%s/", cfg.Port, filestore.URLPrefix)

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("⚠️ Error shutting down server: %v", err)
		}
	}()

	addr := ":" + strings.TrimPrefix(cfg.Port, ":")
	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
