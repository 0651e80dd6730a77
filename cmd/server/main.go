package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"toolhub/internal/agent"
	"toolhub/internal/classifier"
	"toolhub/internal/client/openai"
	"toolhub/internal/client/producthunt"
	"toolhub/internal/config"
	cronrunner "toolhub/internal/cron"
	"toolhub/internal/db"
	"toolhub/internal/handler"
	"toolhub/internal/ingest"
	"toolhub/internal/logger"
	gormrepository "toolhub/internal/repository/gorm"
	"toolhub/internal/scraper"
	"toolhub/internal/sitebuilder"
)

//go:generate swag init -g cmd/server/main.go -o docs

// @title           ToolHub API
// @version         0.1.0
// @description     AI tool catalog: multi-source sync, search, and agents.
// @host            localhost:8080
// @BasePath        /
// @schemes         http

func main() {
	cfgPath := os.Getenv("TH_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("TH_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	phHTTP := &http.Client{Timeout: cfg.ProductHunt.Timeout}
	phClient := producthunt.NewClient(phHTTP, cfg.ProductHunt.BaseURL, cfg.ProductHunt.Token)
	scrapeHTTP := &http.Client{Timeout: cfg.Scraper.Timeout}
	pageScraper := scraper.New(scrapeHTTP, cfg.Scraper, logger)
	openaiHTTP := &http.Client{Timeout: cfg.OpenAI.Timeout}
	openaiClient := openai.NewClient(openaiHTTP, cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model)

	store := gormrepository.New(dbConn.Gorm)
	syncService := &ingest.SyncService{
		Repo:       store,
		Posts:      phClient,
		Scraper:    pageScraper,
		Targets:    cfg.Scraper.Targets,
		Classifier: classifier.New(cfg.Classifier.Keywords),
		PageSize:   cfg.ProductHunt.PageSize,
		Logger:     logger,
	}
	agentRunner := &agent.Runner{Client: openaiClient, Logger: logger}
	siteBuilder := &sitebuilder.Builder{Client: openaiClient, Logger: logger}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	toolsHandler := &handler.ToolsHandler{
		Repo:   store,
		Sync:   syncService,
		Logger: logger,
	}
	toolsHandler.Register(engine)
	agentsHandler := &handler.AgentsHandler{Runner: agentRunner, Logger: logger}
	agentsHandler.Register(engine)
	builderHandler := &handler.BuilderHandler{Builder: siteBuilder, Logger: logger}
	builderHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled {
		_, err = cronRunner.Add(cfg.Cron.SyncAll, func(ctx context.Context) {
			result, err := syncService.SyncAll(ctx)
			if err != nil {
				logger.Warn("cron sync all failed", zap.Error(err))
				return
			}
			logger.Info("cron sync all ok",
				zap.Int("synced", result.Inserted),
				zap.Int("candidates", result.Candidates),
				zap.Int("errors", len(result.Errors)),
			)
		})
		if err != nil {
			logger.Warn("cron register sync all failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown failed", zap.Error(err))
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
