package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/refine-admin-api/api/swagger"
	"github.com/noah-isme/refine-admin-api/internal/handler"
	"github.com/noah-isme/refine-admin-api/internal/repository"
	"github.com/noah-isme/refine-admin-api/internal/service"
	"github.com/noah-isme/refine-admin-api/pkg/cache"
	"github.com/noah-isme/refine-admin-api/pkg/config"
	"github.com/noah-isme/refine-admin-api/pkg/database"
	"github.com/noah-isme/refine-admin-api/pkg/events"
	"github.com/noah-isme/refine-admin-api/pkg/jobs"
	"github.com/noah-isme/refine-admin-api/pkg/logger"
	"github.com/noah-isme/refine-admin-api/pkg/middleware/trailingslash"
	"github.com/noah-isme/refine-admin-api/pkg/storage"
)

// @title Refine Admin API
// @version 1.0.0
// @description Backend for the posts, categories and roles admin dashboard.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db.DB, database.Up); err != nil {
			return err
		}
		logr.Info("database migrated")
	}

	checks := map[string]handler.HealthCheck{"postgres": db.PingContext}

	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, category cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			cacheRepo = repository.NewCacheRepository(client)
			checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cfg.Cache.Enabled)

	bus, err := newBus(cfg.Events, logr)
	if err != nil {
		return err
	}
	defer bus.Close()
	notifier := service.NewChangeNotifier(bus, cfg.Events.SubjectPrefix, metrics, logr)

	validate := validator.New()
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	roleRepo := repository.NewRoleRepository(db)

	postSvc := service.NewPostService(postRepo, notifier, validate, logr)
	svc := services{
		Auth: service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
			AccessTokenSecret:  cfg.JWT.Secret,
			AccessTokenExpiry:  cfg.JWT.Expiration,
			RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
			Issuer:             cfg.JWT.Issuer,
		}),
		Access:     service.NewAccessControlService(),
		Posts:      postSvc,
		Categories: service.NewCategoryService(categoryRepo, cacheSvc, notifier, validate, logr),
		Roles:      service.NewRoleService(roleRepo, notifier, validate, logr),
		Grid:       service.NewGridService(metrics),
		Notifier:   notifier,
		Metrics:    metrics,
		Audit:      userRepo,
		Checks:     checks,
	}

	if cfg.Exports.Enabled {
		store, err := newStore(ctx, cfg)
		if err != nil {
			return err
		}
		exportRepo := repository.NewExportJobRepository(db)
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportSvc := service.NewExportService(exportRepo, postSvc, store, signer, metrics, validate, logr, service.ExportConfig{
			APIPrefix:       cfg.APIPrefix,
			MaxRows:         cfg.Exports.MaxRows,
			CleanupInterval: cfg.Exports.CleanupInterval,
		})
		worker := service.NewExportWorker(exportRepo, exportSvc, metrics, logr)
		queue := jobs.NewQueue("exports", worker.Handle, jobs.QueueConfig{
			Workers:    cfg.Exports.WorkerConcurrency,
			MaxRetries: cfg.Exports.WorkerRetries,
			RetryDelay: 2 * time.Second,
			OnFailure:  worker.Fail,
			Logger:     logr,
		})
		exportSvc.SetQueue(queue)
		queue.Start(ctx)
		defer queue.Stop()
		exportSvc.RecoverPendingJobs(ctx)
		exportSvc.StartCleanup(ctx)
		svc.Exports = exportSvc
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           trailingslash.Strip(newRouter(cfg, logr, svc)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newBus(cfg config.EventsConfig, logr *zap.Logger) (events.Bus, error) {
	if cfg.NATSURL == "" {
		logr.Info("using in-process event broker")
		return events.NewBroker(), nil
	}
	bus, err := events.NewNATSBus(cfg.NATSURL)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	logr.Info("connected to nats", zap.String("url", cfg.NATSURL))
	return bus, nil
}

func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Exports.StorageDriver {
	case config.StorageDriverS3:
		return storage.NewS3Storage(ctx, cfg.S3)
	case config.StorageDriverLocal, "":
		return storage.NewLocalStorage(cfg.Exports.StorageDir)
	default:
		return nil, fmt.Errorf("unknown exports storage driver %q", cfg.Exports.StorageDriver)
	}
}
