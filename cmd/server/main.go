package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/domain"
	apphttp "bookshelf/internal/http"
	"bookshelf/internal/repository/memory"
	"bookshelf/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed, err := loadSeed(cfg, logger)
	if err != nil {
		logger.Fatalf("load catalog seed: %v", err)
	}

	store := memory.NewStore(seed)
	userRepo := memory.NewUserRepository(store)
	bookRepo := memory.NewBookRepository(store)

	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	tokenService := service.NewTokenService(
		[]byte(cfg.Auth.JWTSecret),
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
	)
	catalogService := service.NewCatalogService(bookRepo)
	reviewService := service.NewReviewService(bookRepo)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, tokenService, catalogService, reviewService, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func loadSeed(cfg config.Config, logger *logrus.Logger) ([]domain.Book, error) {
	if cfg.Catalog.SeedPath == "" {
		return catalog.Default(), nil
	}
	books, err := catalog.LoadFile(cfg.Catalog.SeedPath)
	if err != nil {
		return nil, err
	}
	logger.Infof("loaded %d books from %s", len(books), cfg.Catalog.SeedPath)
	return books, nil
}
