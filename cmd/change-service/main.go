package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/zyra-app/zyra-change-service/internal/app/background"
	"github.com/zyra-app/zyra-change-service/internal/config"
	httpdelivery "github.com/zyra-app/zyra-change-service/internal/delivery/http"
	"github.com/zyra-app/zyra-change-service/internal/delivery/http/handlers"
	publisher "github.com/zyra-app/zyra-change-service/internal/infrastructure/kafka"
	"github.com/zyra-app/zyra-change-service/internal/infrastructure/metrics"
	"github.com/zyra-app/zyra-change-service/internal/infrastructure/migrate"
	"github.com/zyra-app/zyra-change-service/internal/infrastructure/postgres"
	"github.com/zyra-app/zyra-change-service/internal/infrastructure/postgres/repository"
	"github.com/zyra-app/zyra-change-service/internal/infrastructure/rediscache"
	"github.com/zyra-app/zyra-change-service/internal/infrastructure/shopify"
	"github.com/zyra-app/zyra-change-service/internal/usecase"
	changeuc "github.com/zyra-app/zyra-change-service/internal/usecase/change"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.ChangeDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.ChangeDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := publisher.NewDefaultKafkaPublisher(brokers)
	sub := publisher.NewDefaultKafkaSubscriber(brokers)

	// Init change record repo
	changeRepo := repository.NewDefaultChangeRepository(db)
	// Init automation settings repo
	settingsRepo := repository.NewDefaultSettingsRepository(db)

	// Init store platform client
	storeClient, err := shopify.NewHTTPStoreClient(fmt.Sprintf("http://%s:%s", cfg.ShopifyAPI.Host, cfg.ShopifyAPI.Port))
	if err != nil {
		log.Fatalf("failed to init store platform client")
	}

	// Init summary cache
	summaryCache := rediscache.NewSummaryCache(cfg.RedisCache.Addr, cfg.RedisCache.Password, cfg.RedisCache.DB, cfg.RedisCache.SummaryTTL)

	// Init metrics
	changeMetrics := metrics.NewChangeMetrics()

	// Init change usecase
	uc := changeuc.NewDefaultChangeUsecase(
		changeRepo,
		settingsRepo,
		storeClient,
		pub,
		summaryCache,
		changeMetrics,
		cfg.KafkaService.ChangeEventsTopic,
	)
	uc.AutopilotBatch = cfg.Autopilot.BatchSize
	// Init settings usecase
	settingsUsecase := usecase.NewDefaultSettingsUsecase(settingsRepo)

	// Background workers: autopilot loop, pending sweep, measurement intake
	tasks := background.NewBackgroundTasks(uc, changeRepo, sub, cfg)
	tasks.StartAll(context.Background())

	// HTTP server
	changeHandler := handlers.NewChangeHandler(uc)
	settingsHandler := handlers.NewSettingsHandler(settingsUsecase)
	router := httpdelivery.NewRouter(changeHandler, settingsHandler)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("HTTP server started on %s\n", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
