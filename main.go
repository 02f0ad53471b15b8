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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"office-hours-server/internal/config"
	"office-hours-server/internal/logger"
	"office-hours-server/internal/middleware"
	"office-hours-server/internal/models"
	"office-hours-server/internal/routes"
	"office-hours-server/internal/scheduling"
	"office-hours-server/internal/store"
	"office-hours-server/internal/tasks"
	"office-hours-server/internal/utils"
)

// @title                       Office Hours API
// @version                     1.0
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer zlog.Sync()

	ledger, accounts, err := openStores(cfg)
	if err != nil {
		zlog.Fatal("Error connecting to database", zap.Error(err))
	}

	if err := utils.RegisterValidators(); err != nil {
		zlog.Fatal("Error registering validators", zap.Error(err))
	}

	engine := scheduling.NewEngine(ledger, zlog.Named("scheduling"), scheduling.WithLocation(cfg.Location))
	limiter := middleware.NewRateLimiter(cfg.AuthRateLimit.RPS, cfg.AuthRateLimit.Burst)

	scheduler, err := tasks.InitScheduler(&tasks.Jobs{
		Accounts: accounts,
		Limiter:  limiter,
		Logger:   zlog.Named("tasks"),
	})
	if err != nil {
		zlog.Fatal("Error starting cron scheduler", zap.Error(err))
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(zlog.Named("http")), middleware.Timeout(cfg.RequestTimeout))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, cfg, routes.Dependencies{
		Engine:   engine,
		Accounts: accounts,
		Limiter:  limiter,
		Logger:   zlog,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zlog.Info("Server running", zap.String("port", cfg.Port), zap.String("dbDriver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down")

	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("Forced shutdown", zap.Error(err))
	}
}

func openStores(cfg *config.Config) (scheduling.Ledger, store.Accounts, error) {
	if cfg.Database.Driver == config.DriverMemory {
		return store.NewMemoryLedger(), store.NewMemoryAccounts(), nil
	}

	db, err := models.InitDB(models.DatabaseConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
		Debug:  cfg.IsDevelopment(),
	})
	if err != nil {
		return nil, nil, err
	}
	return store.NewGormLedger(db), store.NewGormAccounts(db), nil
}
