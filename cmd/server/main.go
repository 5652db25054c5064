package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nbekov/noted/config"
	"github.com/nbekov/noted/internal/hashing"
	"github.com/nbekov/noted/internal/health"
	"github.com/nbekov/noted/internal/infrastructure/postgres"
	"github.com/nbekov/noted/internal/logging"
	"github.com/nbekov/noted/internal/metrics"
	"github.com/nbekov/noted/internal/sweeper"
	httptransport "github.com/nbekov/noted/internal/transport/http"
	"github.com/nbekov/noted/internal/transport/http/handler"
	"github.com/nbekov/noted/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := postgres.Migrate(ctx, cfg.DatabaseURL); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool, cfg.UniquenessCaseInsensitive)
	categoryRepo := postgres.NewCategoryRepository(pool)
	noteRepo := postgres.NewNoteRepository(pool)
	tokenRepo := postgres.NewTokenRepository(pool)

	hasher := hashing.New(cfg.HashPepper)
	sessions := usecase.NewSessionManager(tokenRepo, userRepo, time.Duration(cfg.TokenTTLHours)*time.Hour)

	authUsecase := usecase.NewAuthUsecase(userRepo, sessions, hasher, logger)
	dataService := usecase.NewDataService(sessions, categoryRepo, noteRepo, userRepo, tokenRepo, hasher)

	authHandler := handler.NewAuthHandler(authUsecase, logger)
	categoryHandler := handler.NewCategoryHandler(dataService, logger)
	noteHandler := handler.NewNoteHandler(dataService, logger)
	userHandler := handler.NewUserHandler(dataService, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, categoryHandler, noteHandler, userHandler),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	sweep := sweeper.New(tokenRepo, logger, cfg.SweepSchedule)
	if err := sweep.Start(); err != nil {
		stop()
		log.Fatalf("sweeper: %v", err)
	}

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	<-sweep.Stop().Done()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}
