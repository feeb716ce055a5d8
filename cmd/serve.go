package cmd

import (
	"os"
	"strconv"
	"time"

	"buildflow-backend/database"
	"buildflow-backend/middlewares"
	"buildflow-backend/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
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

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		// ---- Database
		database.Connect()
		if err := database.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}

		// ---- Limits (configurable via env)
		// Fiber default BodyLimit is 4 * 1024 * 1024 bytes if unset (per docs).
		// We allow overriding with BODY_LIMIT_BYTES or BODY_LIMIT_MB.
		bodyLimitBytes := envInt("BODY_LIMIT_BYTES", 0)
		if bodyLimitBytes <= 0 {
			bodyLimitBytes = envInt("BODY_LIMIT_MB", 4) * 1024 * 1024
		}

		// ---- Fiber app with global error handler + body limit
		app := fiber.New(fiber.Config{
			ErrorHandler: middlewares.ErrorHandler,
			BodyLimit:    bodyLimitBytes,
		})

		app.Use(middlewares.RequestLogger())

		// ---- CORS
		allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}
		app.Use(cors.New(cors.Config{
			AllowOrigins: allowedOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Idempotency-Key",
		}))

		// ---- Global rate limiter (applies to all routes; tune via env)
		rlMax := envInt("RATE_LIMIT_MAX", 60)                                            // default 60 reqs
		rlWindow := time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second // default 60s window
		app.Use(limiter.New(limiter.Config{
			Max:        rlMax,
			Expiration: rlWindow,
		}))

		// ---- Routes
		routes.Register(app)

		// ---- Start
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		log.Info().Str("port", port).Msg("API server starting")
		if err := app.Listen(":" + port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
