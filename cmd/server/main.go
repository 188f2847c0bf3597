package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"go-pos-inventory/internal/ai"
	"go-pos-inventory/internal/auth"
	"go-pos-inventory/internal/backup"
	"go-pos-inventory/internal/config"
	"go-pos-inventory/internal/database"
	"go-pos-inventory/internal/handlers"
	"go-pos-inventory/internal/middleware"
	"go-pos-inventory/internal/models"
	"go-pos-inventory/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config error: %v", err)
	}
	logger := config.NewLogger(cfg.LogLevel, os.Stdout)

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("storage error: %v", err)
	}
	defer closeStore()

	users, err := seedUsers(cfg)
	if err != nil {
		logger.Fatalf("user init error: %v", err)
	}
	guard := auth.NewGuard(users,
		auth.WithMaxAttempts(cfg.MaxAttempts),
		auth.WithLockout(cfg.LockoutPeriod),
		auth.WithDelay(cfg.LoginDelay),
	)

	shop := service.New(ctx, store, guard, logger)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	assistant := ai.NewAgent(shop, cfg.GeminiAPIKey)

	info := handlers.SystemInfo{StorageDriver: cfg.StorageDriver}
	if cfg.BackupInterval > 0 {
		job := backup.NewJob(shop, cfg.BackupDir, logger)
		scheduler, err := job.Start(cfg.BackupInterval)
		if err != nil {
			logger.Fatalf("backup scheduler error: %v", err)
		}
		defer scheduler.Stop()
		info.BackupDir = cfg.BackupDir
		info.BackupInterval = cfg.BackupInterval.String()
	}

	middleware.InitMetrics(service.Collectors()...)
	h := handlers.New(shop, tokens, assistant, info, logger)
	router := handlers.NewRouter(h, handlers.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		AccessLog:      logger,
		WebDir:         cfg.WebDir,
	})

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Infof("server starting on %s (storage: %s)", cfg.BaseURL, cfg.StorageDriver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil {
			logger.Errorf("force close failed: %v", closeErr)
		}
	}
}

// openStore picks the persistence driver from config.
func openStore(ctx context.Context, cfg config.Config, logger *logrus.Logger) (database.Store, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageMySQL:
		db, err := database.Connect(cfg.DatabaseDSN, logger)
		if err != nil {
			return nil, nil, err
		}
		gateway, err := database.NewGormGateway(db)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return gateway, closeDB, nil

	case config.StorageRedis:
		client, err := database.ConnectRedis(ctx, cfg.RedisAddress)
		if err != nil {
			return nil, nil, err
		}
		return database.NewRedisGateway(client, cfg.RedisKey), func() { client.Close() }, nil

	default:
		gateway, err := database.NewFileGateway(cfg.StateDir)
		if err != nil {
			return nil, nil, err
		}
		return gateway, func() {}, nil
	}
}

func seedUsers(cfg config.Config) ([]models.User, error) {
	admin, err := auth.NewUser("admin", cfg.AdminPassword, models.RoleAdmin, bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	sales, err := auth.NewUser("user", cfg.SalesPassword, models.RoleSales, bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return []models.User{admin, sales}, nil
}
