package main

// @title reciclar.ia core API
// @version 1.0.0
// @description Core do assistente de reciclagem: busca do ponto de coleta mais próximo sobre um índice geohash, cota atômica de uso por identidade e orquestração com fallback dos provedores de agenda de coleta (Loga, Ecourbis).

// @contact.name API Support
// @contact.email suporte@reciclar.ia

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/Reciclaria/reciclar.ia/docs"
	"github.com/Reciclaria/reciclar.ia/internal/config"
	httpDelivery "github.com/Reciclaria/reciclar.ia/internal/delivery/http"
	"github.com/Reciclaria/reciclar.ia/internal/delivery/http/handler"
	"github.com/Reciclaria/reciclar.ia/internal/geoindex"
	"github.com/Reciclaria/reciclar.ia/internal/pkg/logger"
	"github.com/Reciclaria/reciclar.ia/internal/provider"
	"github.com/Reciclaria/reciclar.ia/internal/repository/cache"
	"github.com/Reciclaria/reciclar.ia/internal/repository/postgres"
	"github.com/Reciclaria/reciclar.ia/internal/usecase"
	"github.com/Reciclaria/reciclar.ia/internal/worker"
	"github.com/Reciclaria/reciclar.ia/internal/worker/dataset"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "reciclaria-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting reciclar.ia core")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	pointRepo := postgres.NewPointRepository(db)
	quotaRepo := cache.NewQuotaRepository(redisClient)
	cacheRepo := cache.NewCacheRepository(redisClient)

	log.Info("Repositories initialized")

	// 7. Build the geo index from the dataset
	index := geoindex.New(log)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	points, err := pointRepo.ListAll(loadCtx)
	loadCancel()
	if err != nil {
		log.Fatal("Failed to load collection points", zap.Error(err))
	}
	index.Reload(points)

	// 8. Periodic dataset refresh against the serving index
	var workerManager *worker.Manager
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	if cfg.Worker.Enabled {
		workerManager = worker.NewManager(log)
		workerManager.Register(dataset.NewRefreshWorker(pointRepo, index, cfg.Worker.RefreshInterval, log))

		if err := workerManager.Start(workerCtx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	} else {
		log.Info("Dataset refresh worker disabled")
	}

	// 9. Schedule providers, in fallback order
	providers, err := provider.NewFromConfig(&cfg.Providers, log)
	if err != nil {
		log.Fatal("Failed to initialize schedule providers", zap.Error(err))
	}
	log.Info("Schedule providers initialized", zap.Int("count", len(providers)))

	// 10. Initialize use cases
	searchUC := usecase.NewSearchUseCase(
		index,
		pointRepo,
		log,
		cfg.Search.DefaultRadiusMeters,
		cfg.Search.MaxRadiusMeters,
	)

	quotaUC := usecase.NewQuotaUseCase(quotaRepo, log, cfg.Quota.DefaultLimit)

	scheduleUC := usecase.NewScheduleUseCase(
		providers,
		cacheRepo,
		index,
		log,
		cfg.Providers.RequestTimeout,
		cfg.Providers.OverallDeadline,
		cfg.Cache.ScheduleCacheTTL,
	)

	formatter := usecase.NewTextFormatter()

	log.Info("Use cases initialized")

	// 11. Initialize HTTP handlers and server
	searchHandler := handler.NewSearchHandler(searchUC, formatter, log)
	quotaHandler := handler.NewQuotaHandler(quotaUC, log)
	scheduleHandler := handler.NewScheduleHandler(scheduleUC, formatter, log)

	server := httpDelivery.NewServer(
		cfg,
		log,
		searchHandler,
		quotaHandler,
		scheduleHandler,
	)

	// 12. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 13. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	if workerManager != nil {
		workerCancel()
		if err := workerManager.Stop(); err != nil {
			log.Error("Workers shutdown error", zap.Error(err))
		}
	}

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
