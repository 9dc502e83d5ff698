package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/WilLunaj/Ventas-web/controllers"
	"github.com/WilLunaj/Ventas-web/database"
	"github.com/WilLunaj/Ventas-web/middlewares"
	"github.com/WilLunaj/Ventas-web/routes"
	"github.com/WilLunaj/Ventas-web/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// envInt reads an int env var with a default fallback.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// newSink picks the attachment backend: Google Drive when service-account
// credentials are configured, the local filesystem otherwise.
func newSink(logger *zap.Logger) (storage.Sink, error) {
	if creds := os.Getenv("GOOGLE_CREDENTIALS"); creds != "" {
		logger.Info("attachments: google drive backend")
		return storage.NewDrive(context.Background(), []byte(creds), os.Getenv("DRIVE_FOLDER_ID"), logger)
	}

	root := os.Getenv("UPLOAD_FOLDER")
	if root == "" {
		root = "static/uploads"
	}
	logger.Info("attachments: local filesystem backend", zap.String("root", root))
	return storage.NewLocal(root), nil
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file, using process environment")
	}

	// ---- Database
	if err := database.Connect(); err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// ---- Attachment sink
	sink, err := newSink(logger)
	if err != nil {
		logger.Fatal("attachment sink setup failed", zap.Error(err))
	}

	// ---- Limits (configurable via env)
	bodyLimitBytes := envInt("BODY_LIMIT_BYTES", 0)
	if bodyLimitBytes <= 0 {
		bodyLimitBytes = envInt("BODY_LIMIT_MB", 8) * 1024 * 1024
	}

	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler(logger),
		BodyLimit:    bodyLimitBytes,
	})

	// ---- CORS
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// ---- Global rate limiter
	rlMax := envInt("RATE_LIMIT_MAX", 60)
	rlWindow := time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second
	app.Use(limiter.New(limiter.Config{
		Max:        rlMax,
		Expiration: rlWindow,
	}))

	// ---- Routes
	routes.Register(app, controllers.NewVentaController(sink, logger), logger)

	// ---- Start
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("starting server", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
