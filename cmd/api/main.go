package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giftwheel/giveaway-backend/api/routes"
	"github.com/giftwheel/giveaway-backend/internal/config"
	"github.com/giftwheel/giveaway-backend/internal/handlers"
	"github.com/giftwheel/giveaway-backend/internal/services"
	"github.com/giftwheel/giveaway-backend/internal/wheel"
	"github.com/giftwheel/giveaway-backend/pkg/catalogapi"
	"github.com/giftwheel/giveaway-backend/pkg/chatgateway"
	"github.com/joho/godotenv"

	mongorepo "github.com/giftwheel/giveaway-backend/internal/repositories/mongodb"
	"github.com/giftwheel/giveaway-backend/pkg/mongodb"
)

func main() {
	// Load .env file if present; real deployments use environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	giveawayRepo := mongorepo.NewGiveawayRepository(db)
	memberRepo := mongorepo.NewMemberRepository(db)
	purchaseRepo := mongorepo.NewPurchaseRepository(db)
	winnerRepo := mongorepo.NewWinnerRepository(db)
	adminUserRepo := mongorepo.NewAdminUserRepository(db)
	announcementRepo := mongorepo.NewAnnouncementRepository(db)
	auditRepo := mongorepo.NewSpinAuditRepository(db)
	settingsRepo := mongorepo.NewSystemSettingsRepository(db)

	// External collaborators
	catalogClient := catalogapi.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.Catalog.MockAPI)
	var chat chatgateway.Gateway
	if cfg.Chat.MockGateway {
		chat = chatgateway.NewMockGateway("CHAT")
	} else {
		chat = chatgateway.NewWebhookGateway(cfg)
	}

	// The wheel engine: weighted selection plus animation rendering
	engine := wheel.NewEngine(nil, nil, cfg.Wheel.RenderWorkers)

	// Services
	authService := services.NewAuthService(adminUserRepo, cfg)
	catalogService := services.NewCatalogService(catalogClient)
	purchaseService := services.NewPurchaseService(purchaseRepo, memberRepo)
	settingsService := services.NewSystemSettingsService(settingsRepo)
	backupService := services.NewBackupService(giveawayRepo, memberRepo, purchaseRepo, winnerRepo, cfg.Backup)
	giveawayService := services.NewGiveawayService(
		giveawayRepo, memberRepo, winnerRepo, announcementRepo, auditRepo, settingsRepo,
		catalogService, engine, chat, cfg.Wheel,
	)

	// Handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:     handlers.NewAuthHandler(authService),
		GiveawayHandler: handlers.NewGiveawayHandler(giveawayService),
		PurchaseHandler: handlers.NewPurchaseHandler(purchaseService),
		CatalogHandler:  handlers.NewCatalogHandler(catalogService),
		BackupHandler:   handlers.NewBackupHandler(backupService),
		SettingsHandler: handlers.NewSystemSettingsHandler(settingsService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	// Periodic backups run for the lifetime of the process
	backupCtx, stopBackups := context.WithCancel(context.Background())
	defer stopBackups()
	if cfg.Backup.Enabled {
		go backupService.Start(backupCtx)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	stopBackups()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
