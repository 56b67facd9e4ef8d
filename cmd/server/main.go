package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/bookstore-backend/internal/config"
	"github.com/ignatzorin/bookstore-backend/internal/db"
	httpHandlers "github.com/ignatzorin/bookstore-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/bookstore-backend/internal/http/router"
	"github.com/ignatzorin/bookstore-backend/internal/logger"
	"github.com/ignatzorin/bookstore-backend/internal/notify"
	"github.com/ignatzorin/bookstore-backend/internal/repository"
	"github.com/ignatzorin/bookstore-backend/internal/service"
	"github.com/ignatzorin/bookstore-backend/internal/storage"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Инициализируем вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	photoStorage, err := storage.NewPhotoStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Очередь отправки кодов подтверждения.
	dispatcher := notify.NewDispatcher(notify.LogEmailSender{}, notify.LogSMSSender{}, cfg.NotifyWorkers, cfg.NotifyQueueSize)
	defer dispatcher.Close()

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	verificationRepo := repository.NewVerificationRepository(dbConn)
	catalogRepo := repository.NewCatalogRepository(dbConn)
	reviewRepo := repository.NewReviewRepository(dbConn)
	orderRepo := repository.NewOrderRepository(dbConn)
	cartRepo := repository.NewCartRepository(dbConn)
	paymentRepo := repository.NewPaymentRepository(dbConn)

	// Сервисы.
	authService := service.NewAuthService(userRepo, verificationRepo, dispatcher, tokenManager, cfg.EmailCodeTTL, cfg.PhoneCodeTTL)
	catalogService := service.NewCatalogService(catalogRepo)
	reviewService := service.NewReviewService(reviewRepo, catalogRepo)
	orderService := service.NewOrderService(orderRepo, paymentRepo, catalogRepo)
	cartService := service.NewCartService(cartRepo, catalogRepo)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService, photoStorage)
	catalogHandler := httpHandlers.NewCatalogHandler(catalogService)
	reviewHandler := httpHandlers.NewReviewHandler(reviewService)
	orderHandler := httpHandlers.NewOrderHandler(orderService)
	cartHandler := httpHandlers.NewCartHandler(cartService)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, authHandler, catalogHandler, reviewHandler, orderHandler, cartHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
