package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/meridian-ins/claims-api/api/swagger"
	"github.com/meridian-ins/claims-api/internal/handler"
	"github.com/meridian-ins/claims-api/internal/middleware"
	"github.com/meridian-ins/claims-api/internal/repository"
	"github.com/meridian-ins/claims-api/internal/service"
	"github.com/meridian-ins/claims-api/pkg/cache"
	"github.com/meridian-ins/claims-api/pkg/config"
	"github.com/meridian-ins/claims-api/pkg/database"
	"github.com/meridian-ins/claims-api/pkg/logger"
	corsmiddleware "github.com/meridian-ins/claims-api/pkg/middleware/cors"
	reqidmiddleware "github.com/meridian-ins/claims-api/pkg/middleware/requestid"
)

// @title Insurance Claims API
// @version 1.0.0
// @description API-key gated insurance claims CRUD with fraud assessment and agent dispatch
// @BasePath /
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	var redisClient *redis.Client
	if cfg.Fraud.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
	}

	claimRepo := repository.NewClaimRepository(db)
	logRepo := repository.NewClaimLogRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Fraud.CacheTTL, logr, cfg.Fraud.CacheEnabled)

	auditSvc := service.NewAuditService(claimRepo, logRepo, cfg.Audit, logr)
	auditSvc.Start(context.Background())
	defer auditSvc.Stop()
	metricsSvc.RegisterQueueDepth("audit", auditSvc.QueueDepth)

	claimSvc := service.NewClaimService(claimRepo, logRepo, auditSvc, validator.New(), logr)
	fraudSvc := service.NewFraudService(claimRepo, cacheSvc, func() (service.Classifier, error) {
		return service.NewHTTPClassifier(cfg.Classifier), nil
	}, metricsSvc, logr, cfg.Fraud.CacheTTL)
	agentSvc := service.NewAgentService(cfg.Agent, logr)
	exportSvc := service.NewExportService(claimRepo)

	claimHandler := handler.NewClaimHandler(claimSvc)
	agentHandler := handler.NewAgentHandler(agentSvc, fraudSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authed := r.Group("/", middleware.APIKey(cfg.APIKey))
	authed.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Insurance Claims API is running!"})
	})
	authed.POST("/claims", claimHandler.Create)
	authed.GET("/claims", claimHandler.List)
	authed.GET("/claims/export", exportHandler.Export)
	authed.GET("/claims/:identifier", claimHandler.Get)
	authed.GET("/logs", claimHandler.Logs)
	authed.GET("/agent/check_fraud/:claim_id", agentHandler.CheckFraud)
	authed.POST("/agent/query", agentHandler.Query)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
