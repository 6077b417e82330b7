package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"volunteer-match/internal/bus"
	"volunteer-match/internal/config"
	"volunteer-match/internal/handler"
	"volunteer-match/internal/middleware"
	"volunteer-match/internal/repository"
	"volunteer-match/internal/service"
	"volunteer-match/internal/service/profile"
)

const (
	shutdownTimeout = 10 * time.Second
	sessionSweep    = time.Hour
)

func newServeCmd(configPath *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func runServe(ctx context.Context, configPath string, migrate bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", zap.Error(err))
		return err
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Error("failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	if migrate {
		applied, err := repository.Migrate(ctx, db)
		if err != nil {
			log.Error("migration failed", zap.Error(err))
			return err
		}
		log.Info("migrations applied", zap.Strings("files", applied))
	}

	redisClient, err := connectRedis(cfg, log)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var storage profile.ObjectStorage
	minioCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	minioClient, err := config.NewMinIOClient(minioCtx, cfg, log)
	cancel()
	if err != nil {
		log.Warn("minio unavailable, avatar uploads disabled", zap.Error(err))
	} else {
		storage = minioClient
	}

	var notices bus.Bus = bus.NewLocal()
	if cfg.BusDriver == config.BusRedis {
		notices = bus.NewRedis(redisClient, log.Named("bus"))
	}
	defer notices.Close()

	repos := repository.NewRepositories(db)
	services, err := service.NewServices(repos, redisClient, storage, notices, cfg, log)
	if err != nil {
		log.Error("failed to build services", zap.Error(err))
		return err
	}
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		AppName:      "volunteer-match",
		ErrorHandler: middleware.NewErrorHandler(log.Named("http")),
		BodyLimit:    4 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log.Named("http")))
	app.Use(middleware.Metrics())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	handler.SetupRoutes(app, handlers, services.Auth, handler.RouteOptions{
		ProtectEventWrites: cfg.ProtectEventWrites,
	})

	go sweepSessions(ctx, repos.Session, log)

	listenErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("bus", cfg.BusDriver))
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		log.Error("server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	handlers.Notification.CloseStreams()
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Warn("graceful shutdown incomplete", zap.Error(err))
	}
	return nil
}

// connectRedis returns nil when Redis is optional and unreachable. The redis
// bus driver cannot run without it.
func connectRedis(cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
	client, err := config.NewRedisClient(cfg)
	if err == nil {
		return client, nil
	}
	if cfg.BusDriver == config.BusRedis {
		log.Error("redis is required by BUS_DRIVER=redis", zap.Error(err))
		return nil, err
	}
	log.Warn("redis unavailable, caching disabled", zap.Error(err))
	return nil, nil
}

func sweepSessions(ctx context.Context, sessions repository.SessionRepository, log *zap.Logger) {
	ticker := time.NewTicker(sessionSweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.PurgeExpired(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("failed to purge sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("purged sessions", zap.Int64("count", n))
			}
		}
	}
}
