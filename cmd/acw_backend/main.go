package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/services"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/handlers"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/middleware"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/platform/config"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/platform/migrations"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/repositories/database/pgsql"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/utils"
	"github.com/Tayyab-Hussayn/Web-Content-writer/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// @title AI Content Writer API
// @version 1.0
// @description Screenshot analysis and page copy generation backend.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Debug {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Running database migrations...")
	if err := migrations.Up(cfg.DatabaseURL, logger); err != nil {
		return err
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	repos := pgsql.NewRepositoryProvider(dbPool)
	container, err := services.NewServiceContainer(cfg, repos, utils.NewArgon2idHasher(utils.DefaultArgon2Params), time.Now)
	if err != nil {
		return err
	}
	if !container.GoogleOAuth.Enabled() {
		logger.Warn("Google sign-in disabled: GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set")
	}
	if len(cfg.GeminiAPIKeys) == 0 {
		logger.Warn("No GEMINI_API_KEY_n configured, screenshot analysis returns placeholder output")
	}

	sweeper := services.NewSessionSweeper(repos.SessionRepo, cfg.SessionSweepInterval, nil, logger)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := middleware.NewMetrics()

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), metrics.Middleware())
	if len(cfg.BackendCORSOrigins) > 0 {
		r.Use(cors.New(corsConfig(cfg.BackendCORSOrigins)))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	if err := handlers.RegisterRoutes(r, cfg, container); err != nil {
		return err
	}
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// corsConfig allows credentials from the configured origins; "*" allows any origin.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
