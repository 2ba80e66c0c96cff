package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/spendtrails-site/api/swagger"
	"github.com/noah-isme/spendtrails-site/internal/handler"
	internalmiddleware "github.com/noah-isme/spendtrails-site/internal/middleware"
	"github.com/noah-isme/spendtrails-site/internal/repository"
	"github.com/noah-isme/spendtrails-site/internal/service"
	"github.com/noah-isme/spendtrails-site/pkg/cache"
	"github.com/noah-isme/spendtrails-site/pkg/config"
	"github.com/noah-isme/spendtrails-site/pkg/logger"
	corsmiddleware "github.com/noah-isme/spendtrails-site/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/spendtrails-site/pkg/middleware/requestid"
)

// @title Spendtrails Site Content API
// @version 1.0.0
// @description CMS content for the Spendtrails marketing site with static fallback data
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsSvc := service.NewMetricsService()

	var cacheRepo *repository.CacheRepository
	if cfg.ContentCache.Enabled {
		redisClient, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, content cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}
	var cacheStore service.CacheRepository
	if cacheRepo != nil {
		cacheStore = cacheRepo
	}
	cacheSvc := service.NewCacheService(cacheStore, metricsSvc, cfg.ContentCache.TTL, logr, cacheRepo != nil)

	fallbackRepo := repository.NewFallbackRepository()
	client := service.NewContentClient(service.ContentClientConfig{
		Env:      cfg.Sanity,
		Fallback: fallbackRepo,
		Cache:    cacheSvc,
		CacheTTL: cfg.ContentCache.TTL,
		Metrics:  metricsSvc,
		Logger:   logr,
	})

	validate := validator.New()
	contentSvc := service.NewContentService(client, fallbackRepo, validate, metricsSvc, logr)
	statusSvc := service.NewStatusService(client, metricsSvc, cfg.IsDevelopment(), logr)
	statusSvc.LogDevelopmentStatus()
	imageSvc := service.NewImageService(client)

	var warmupState interface{ Done() bool }
	if cfg.Warmup.Enabled && client.Mode().IsLive() && cacheSvc.Enabled() {
		warmupSvc := service.NewWarmupService(client, cfg.Warmup.Workers, logr)
		warmupState = warmupSvc
		go func() {
			if err := warmupSvc.Run(ctx); err != nil {
				logr.Warn("content warm-up aborted", zap.Error(err))
			}
		}()
	}

	contentHandler := handler.NewContentHandler(contentSvc)
	cmsHandler := handler.NewCMSHandler(statusSvc, imageSvc, validate)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, client, warmupState)
	if cacheRepo != nil {
		metricsHandler.WithCacheCheck(cacheRepo)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.WithResponseMeta())
	r.Use(internalmiddleware.Metrics(metricsSvc, "/health", "/ready", "/metrics"))
	r.Use(internalmiddleware.ContentMode(client))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	content := api.Group("/content")
	content.GET("/homepage", contentHandler.Homepage)
	content.GET("/site-settings", contentHandler.SiteSettings)
	content.GET("/features", contentHandler.FeaturesPage)
	content.GET("/pricing", contentHandler.PricingPage)
	content.GET("/pages/:slug", contentHandler.Page)
	content.GET("/by-type/:type", contentHandler.ByType)

	cms := api.Group("/cms")
	cms.GET("/status", cmsHandler.Status)
	cms.GET("/image", cmsHandler.Image)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting",
			zap.String("addr", addr),
			zap.String("env", cfg.Env),
			zap.String("content_mode", string(client.Mode())))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
