package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/refund-service/internal/api/http"
	"github.com/spec-kit/refund-service/internal/api/http/handlers"
	"github.com/spec-kit/refund-service/internal/auth"
	"github.com/spec-kit/refund-service/internal/config"
	"github.com/spec-kit/refund-service/internal/events"
	"github.com/spec-kit/refund-service/internal/observability"
	"github.com/spec-kit/refund-service/internal/persistence"
	"github.com/spec-kit/refund-service/internal/repository"
	"github.com/spec-kit/refund-service/internal/service"
	"github.com/spec-kit/refund-service/internal/storage"
	"github.com/spec-kit/refund-service/internal/upload"
	"github.com/spec-kit/refund-service/internal/worker"
)

const multipartOverhead = 1024 * 1024

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var revocations auth.RevocationStore = auth.NoopRevocationStore{}
	if redis != nil {
		revocations = auth.NewRedisRevocationStore(redis.Client)
	}

	dispatcher := events.NewInMemoryDispatcher()
	var publisher *events.KafkaPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		defer publisher.Close() //nolint:errcheck
	}
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(dispatcher, notificationService, publisher)

	store, err := newFileStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init file storage", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	refundRepo := repository.NewRefundRepository(pool)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    userRepo,
		Revocations: revocations,
	})
	refundService := service.NewRefundService(refundRepo, dispatcher, logger)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), revocations, logger)
	orchestrator := upload.NewOrchestrator(&cfg.Upload, store, dispatcher, logger)

	healthDeps := map[string]handlers.Pinger{"postgres": pg}
	if redis != nil {
		healthDeps["redis"] = redis
	}

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger),
		BodyLimit:    int(cfg.Upload.MaxFileSize()) + multipartOverhead,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.CORSAllowOrigins)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, healthDeps),
		Sessions:       handlers.NewSessionsHandler(authService),
		Users:          handlers.NewUsersHandler(authService),
		Refunds:        handlers.NewRefundsHandler(refundService),
		Uploads:        handlers.NewUploadsHandler(orchestrator, cfg.Upload.TmpDir),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func newFileStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.FileStorage, error) {
	if cfg.Storage.Driver == config.StorageDriverMinio {
		return storage.NewMinioStorage(ctx, cfg.Storage, cfg.Upload.TmpDir, logger)
	}
	return storage.NewDiskStorage(cfg.Upload.TmpDir, cfg.Upload.UploadsDir)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
