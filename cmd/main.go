package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"document-service/internal/MinIO"
	"document-service/internal/config"
	"document-service/internal/handler/fileHandler"
	"document-service/internal/repository/companyRepo"
	"document-service/internal/repository/fileRepo"
	"document-service/internal/repository/folderRepo"
	"document-service/internal/repository/treeCache"
	"document-service/internal/service/fileService"
	"document-service/internal/service/userService"
	"document-service/pkg/database/postgres"
	"document-service/pkg/database/redis"
	"document-service/pkg/logger"
	"document-service/pkg/middleware"
)

func main() {
	ctx := context.Background()
	ctx, _ = logger.New(ctx)

	cfg, err := config.Load()
	if err != nil {
		logger.GetLogger(ctx).Fatal("Error loading config", zap.Error(err))
	}

	pool, err := postgres.New(ctx, cfg.Postgres)
	if err != nil {
		logger.GetLogger(ctx).Fatal("Error connecting to postgres", zap.Error(err))
	}
	defer pool.Close()

	storage, err := MinIO.New(cfg.MinIO)
	if err != nil {
		logger.GetLogger(ctx).Fatal("Error connecting to object storage", zap.Error(err))
	}

	cache := treeCache.New(redis.New(cfg.Redis), time.Duration(cfg.TreeCacheTTL)*time.Second)

	fileSvc := fileService.New(
		fileRepo.New(pool),
		companyRepo.New(pool),
		folderRepo.New(pool),
		userService.New(cfg.AuthAPIURL, userService.DefaultFolderPermissions),
		storage,
		cache,
		fileService.DefaultFolderTemplates,
	)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(logger.Transfer(ctx, c.Request.Context()))
		c.Next()
	})

	fileGroup := r.Group("/file")
	fileGroup.Use(middleware.Auth(cfg.JWTSecret))
	fileHandler.New(fileSvc).Register(fileGroup)

	logger.GetLogger(ctx).Info("Server starting", zap.String("port", cfg.HTTPPort))
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		logger.GetLogger(ctx).Fatal("Failed to start server", zap.Error(err))
	}
}
