package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/mars1-events-planning/eventool-backend/config"
	"github.com/mars1-events-planning/eventool-backend/internal/auth"
	"github.com/mars1-events-planning/eventool-backend/internal/cache"
	"github.com/mars1-events-planning/eventool-backend/internal/database"
	"github.com/mars1-events-planning/eventool-backend/internal/gql"
	"github.com/mars1-events-planning/eventool-backend/internal/handler"
	"github.com/mars1-events-planning/eventool-backend/internal/repository"
	"github.com/mars1-events-planning/eventool-backend/internal/repository/memstore"
	"github.com/mars1-events-planning/eventool-backend/internal/service"
	"github.com/mars1-events-planning/eventool-backend/internal/storage"
	"github.com/mars1-events-planning/eventool-backend/internal/validation"
	"github.com/mars1-events-planning/eventool-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		logger.WithComponent("main").Fatal("Server stopped", zap.Error(err))
	}
}

// run 組裝並啟動服務；所有初始化錯誤都回傳給 main，確保 defer 的清理會執行
func run() error {
	defer logger.Sync()
	log := logger.WithComponent("main")
	ctx := context.Background()

	cfg := config.LoadConfig()
	if cfg.JWT.Key == "" {
		return errors.New("JWT_KEY must be set")
	}

	// 1. 持久層與快取
	uow, eventCache, cleanup, err := initPersistence(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	// 2. 物件儲存
	minioClient, err := database.InitMinio(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("initialize object storage: %w", err)
	}
	images := storage.NewMinioImageStorage(minioClient, cfg.Storage.Bucket, cfg.Storage.Endpoint, cfg.Storage.UseSSL)

	// 3. 服務
	validator := validation.New()
	tokens := auth.NewTokenService(cfg.JWT)
	eventService := service.NewEventService(uow, validator, eventCache, images)
	organizerService := service.NewOrganizerService(uow, validator, auth.NewPasswordHasher(), tokens, images)

	// 4. 路由
	gin.SetMode(cfg.Server.GinMode)
	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	authMiddleware := handler.NewAuthMiddleware(tokens)
	handler.NewGraphQLHandler(gql.NewSchema(eventService, organizerService)).
		RegisterRoutes(router, authMiddleware.Optional())
	handler.NewImageHandler(eventService, organizerService).
		RegisterRoutes(router, authMiddleware.Required())

	log.Info("Server starting",
		zap.String("port", cfg.Server.Port),
		zap.String("storage_driver", cfg.Server.StorageDriver))
	return router.Run(":" + cfg.Server.Port)
}

// initPersistence 依 STORAGE_DRIVER 建立 UnitOfWork；Redis 無法連線時不使用快取
func initPersistence(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.UnitOfWork, cache.EventCache, func(), error) {
	if cfg.Server.StorageDriver == config.StorageDriverMemory {
		log.Warn("Using in-memory storage, data is lost on restart")
		return memstore.New(), cache.NopEventCache{}, func() {}, nil
	}

	pool, err := database.InitDatabase(ctx, &cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initialize database: %w", err)
	}
	if err := database.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("apply schema: %w", err)
	}

	var eventCache cache.EventCache = cache.NopEventCache{}
	rdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, event cache disabled", zap.Error(err))
	} else {
		eventCache = cache.NewRedisEventCache(rdb, cfg.Redis.EventTTL)
	}

	return repository.NewUnitOfWork(pool), eventCache, func() {
		if rdb != nil {
			rdb.Close()
		}
		pool.Close()
	}, nil
}
