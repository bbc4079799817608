package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medclip/medclip/internal/config"
	"github.com/medclip/medclip/internal/domain/analysis"
	"github.com/medclip/medclip/internal/domain/docimage"
	"github.com/medclip/medclip/internal/domain/favorite"
	"github.com/medclip/medclip/internal/domain/ignorerule"
	"github.com/medclip/medclip/internal/domain/imagesession"
	"github.com/medclip/medclip/internal/domain/room"
	"github.com/medclip/medclip/internal/domain/settings"
	"github.com/medclip/medclip/internal/domain/template"
	"github.com/medclip/medclip/internal/llm"
	"github.com/medclip/medclip/internal/llm/anthropic"
	"github.com/medclip/medclip/internal/llm/openai"
	"github.com/medclip/medclip/internal/platform/auth"
	"github.com/medclip/medclip/internal/platform/db"
	"github.com/medclip/medclip/internal/platform/middleware"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "medclip-server",
		Short: "Medical note relay and analysis API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.HasDatabase() {
				return fmt.Errorf("DATABASE_URL is not set; nothing to migrate")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.HasDatabase() {
				return fmt.Errorf("DATABASE_URL is not set")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Logger: console output in development, JSON everywhere else.
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Persistence: pgx when DATABASE_URL is set, in-memory otherwise.
	var (
		pool           *pgxpool.Pool
		storageBackend = "memory"
		templateRepo   = template.NewRepoMem()
		favoriteRepo   = favorite.NewRepoMem()
		ignoreRepo     = ignorerule.NewRepoMem()
		settingsRepo   = settings.NewRepoMem()
		sessionRepo    = imagesession.NewRepoMem()
	)
	if cfg.HasDatabase() {
		p, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer p.Close()
		pool = p
		storageBackend = "postgres"
		templateRepo = template.NewRepoPG(p)
		favoriteRepo = favorite.NewRepoPG(p)
		ignoreRepo = ignorerule.NewRepoPG(p)
		settingsRepo = settings.NewRepoPG(p)
		sessionRepo = imagesession.NewRepoPG(p)
	}
	logger.Info().Str("backend", storageBackend).Msg("storage backend selected")

	// Room stores: redis when REDIS_URL is set, swept in-memory maps otherwise.
	var pushStore, pullStore room.Store
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		pushStore = room.NewRedisStore(client, room.DirectionPush, cfg.RoomTTL)
		pullStore = room.NewRedisStore(client, room.DirectionPull, cfg.RoomTTL)
		logger.Info().Msg("room relay backed by redis")
	} else {
		push := room.NewMemoryStore(cfg.RoomTTL)
		push.StartSweeper(cfg.SweepInterval)
		defer push.Close()
		pull := room.NewMemoryStore(cfg.RoomTTL)
		pull.StartSweeper(cfg.SweepInterval)
		defer pull.Close()
		pushStore, pullStore = push, pull
		logger.Info().Dur("ttl", cfg.RoomTTL).Dur("sweep", cfg.SweepInterval).Msg("room relay backed by memory")
	}

	// Model engines
	engines := &llm.Engines{}
	if cfg.AnthropicAPIKey != "" {
		engines.Anthropic = anthropic.New(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		logger.Info().Str("model", cfg.AnthropicModel).Msg("anthropic engine enabled")
	}
	if cfg.OpenAIAPIKey != "" {
		engines.OpenAI = openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		logger.Info().Str("model", cfg.OpenAIModel).Msg("openai engine enabled")
	}
	defaultModel := cfg.AnthropicModel
	if engines.Anthropic == nil {
		defaultModel = cfg.OpenAIModel
	}

	// Services
	templateSvc := template.NewService(templateRepo)
	favoriteSvc := favorite.NewService(favoriteRepo)
	ignoreSvc := ignorerule.NewService(ignoreRepo)
	settingsSvc := settings.NewService(settingsRepo)
	sessionSvc := imagesession.NewService(sessionRepo)
	analysisSvc := analysis.NewService(engines, templateSvc, ignoreSvc, defaultModel, logger)
	docimageSvc := docimage.NewService(engines, ignoreSvc, sessionSvc, defaultModel, defaultModel, logger)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(cfg.BodyLimit, cfg.ImageBodyLimit))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware. Without a configured secret every caller is a dev
	// identity; the storage code remains the real access boundary.
	if cfg.AuthSecret != "" {
		e.Use(auth.JWTMiddleware([]byte(cfg.AuthSecret)))
	} else {
		e.Use(auth.DevAuthMiddleware())
	}

	// API group with rate limiting
	apiV1 := e.Group("/api/v1")
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
			"storage": storageBackend,
		})
	})
	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}

	// Domain handlers
	room.NewHandler(pushStore, pullStore).RegisterRoutes(apiV1)
	template.NewHandler(templateSvc).RegisterRoutes(apiV1)
	favorite.NewHandler(favoriteSvc).RegisterRoutes(apiV1)
	ignorerule.NewHandler(ignoreSvc).RegisterRoutes(apiV1)
	settings.NewHandler(settingsSvc).RegisterRoutes(apiV1)
	imagesession.NewHandler(sessionSvc).RegisterRoutes(apiV1)
	analysis.NewHandler(analysisSvc).RegisterRoutes(apiV1)
	docimage.NewHandler(docimageSvc).RegisterRoutes(apiV1)

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("server starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
