package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/ignatzorin/classifieds-backend/internal/auth"
	"github.com/ignatzorin/classifieds-backend/internal/config"
	"github.com/ignatzorin/classifieds-backend/internal/db"
	"github.com/ignatzorin/classifieds-backend/internal/goroutine"
	"github.com/ignatzorin/classifieds-backend/internal/infrastructure/cache"
	"github.com/ignatzorin/classifieds-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/classifieds-backend/internal/interface/http/handler"
	"github.com/ignatzorin/classifieds-backend/internal/interface/http/router"
	"github.com/ignatzorin/classifieds-backend/internal/logger"
	"github.com/ignatzorin/classifieds-backend/internal/storage"
	"github.com/ignatzorin/classifieds-backend/internal/usecase/ban"
	"github.com/ignatzorin/classifieds-backend/internal/usecase/favorite"
	"github.com/ignatzorin/classifieds-backend/internal/usecase/listing"
	"github.com/ignatzorin/classifieds-backend/internal/usecase/report"
	"github.com/ignatzorin/classifieds-backend/internal/usecase/user"
	"github.com/ignatzorin/classifieds-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
	}
	logger.Init(logLevel, cfg.Env)

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Redis необязателен: без него просмотры дедуплицируются только в БД.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Log.WithError(err).Warn("redis недоступен, кэш просмотров отключён")
			redisClient = nil
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					logger.Log.WithError(err).Warn("ошибка закрытия redis")
				}
			}()
		}
	}

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, 0)

	imageStorage, err := storage.NewImageStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Вебсокеты. Hub же служит доставщиком уведомлений модерации.
	hub := ws.NewHub()
	goroutine.GoWithContext(ctx, "ws-hub", hub.Run)

	// Репозитории.
	listingRepo := persistence.NewListingRepository(dbConn)
	reportRepo := persistence.NewReportRepository(dbConn)
	userRepo := persistence.NewUserRepository(dbConn)
	favoriteRepo := persistence.NewFavoriteRepository(dbConn)
	viewRepo := persistence.NewViewRepository(dbConn)

	// Use cases.
	banStatusUC := ban.NewBanStatusUseCase(userRepo)

	var recordViewUC *listing.RecordViewUseCase
	deleteListingUC := listing.NewDeleteListingUseCase(listingRepo, imageStorage, hub)
	if redisClient != nil {
		dedup := cache.NewViewDeduplicator(redisClient, cfg.ViewDedupTTL)
		recordViewUC = listing.NewRecordViewUseCase(listingRepo, viewRepo, dedup)
		deleteListingUC.SetViewCache(dedup)
	} else {
		recordViewUC = listing.NewRecordViewUseCase(listingRepo, viewRepo, nil)
	}

	// HTTP хэндлеры.
	handlers := router.Handlers{
		Health: handler.NewHealthHandler(dbConn, redisClient),
		Listing: handler.NewListingHandler(
			listing.NewSubmitListingUseCase(listingRepo),
			listing.NewEditListingUseCase(listingRepo),
			listing.NewSetListingActiveUseCase(listingRepo),
			listing.NewGetListingUseCase(listingRepo),
			listing.NewListPublicListingsUseCase(listingRepo),
			recordViewUC,
			listing.NewAddListingImageUseCase(listingRepo, imageStorage, cfg.MediaBaseURL),
			user.NewGetSellerContactUseCase(listingRepo, userRepo, banStatusUC),
			cfg.MaxUploadSizeMB<<20,
		),
		Moderation: handler.NewModerationHandler(
			listing.NewListModerationQueueUseCase(listingRepo),
			listing.NewApproveListingUseCase(listingRepo, hub),
			listing.NewRejectListingUseCase(listingRepo, hub),
			deleteListingUC,
			listing.NewManageBadgeUseCase(listingRepo),
		),
		Report: handler.NewReportHandler(
			report.NewFileReportUseCase(reportRepo, listingRepo, userRepo, banStatusUC),
			report.NewGetMyReportUseCase(reportRepo),
			report.NewCancelReportUseCase(reportRepo),
			report.NewListReportsUseCase(reportRepo),
			report.NewReportStatsUseCase(reportRepo),
			report.NewResolveReportUseCase(reportRepo, hub),
			report.NewDeleteReportUseCase(reportRepo),
		),
		User: handler.NewUserHandler(
			user.NewGetProfileUseCase(userRepo, banStatusUC),
			banStatusUC,
			ban.NewBanUserUseCase(userRepo, hub),
			ban.NewUnbanUserUseCase(userRepo, hub),
			ban.NewSetVerifiedUseCase(userRepo),
		),
		Favorite: handler.NewFavoriteHandler(
			favorite.NewSaveListingUseCase(favoriteRepo, listingRepo),
			favorite.NewUnsaveListingUseCase(favoriteRepo),
			favorite.NewIsSavedUseCase(favoriteRepo),
			favorite.NewListSavedUseCase(favoriteRepo, listingRepo),
		),
		WS: handler.NewWSHandler(hub, tokenManager, cfg.AllowedOrigins),
	}

	engine := router.SetupRouter(cfg, tokenManager, handlers)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.Go("http-shutdown", func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("ошибка остановки http сервера")
		}
	})

	logger.Log.WithField("port", cfg.HTTPPort).Info("HTTP сервер запущен")

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
