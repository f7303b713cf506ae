// File: innkeep/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"innkeep/config"
	"innkeep/cron"
	"innkeep/database"
	decorRepo "innkeep/database/repository/decor"
	discountRepo "innkeep/database/repository/discount"
	guestRepo "innkeep/database/repository/guest"
	inventoryRepo "innkeep/database/repository/inventory"
	invoiceRepo "innkeep/database/repository/invoice"
	reservationRepo "innkeep/database/repository/reservation"
	roomRepo "innkeep/database/repository/room"
	settingsRepo "innkeep/database/repository/settings"
	transactionRepo "innkeep/database/repository/transaction"
	"innkeep/handlers"
	"innkeep/middleware"
	"innkeep/routes"
	"innkeep/services/availability"
	"innkeep/services/decor"
	"innkeep/services/discount"
	"innkeep/services/guest"
	"innkeep/services/inventory"
	"innkeep/services/ledger"
	"innkeep/services/reservation"
	"innkeep/services/room"
	"innkeep/services/settings"
	"innkeep/services/tasks"
	"innkeep/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	roomsRepo := roomRepo.NewMongoRoomRepo()
	guestsRepo := guestRepo.NewMongoGuestRepo()
	reservationsRepo := reservationRepo.NewMongoReservationRepo()
	invoicesRepo := invoiceRepo.NewMongoInvoiceRepo()
	decorsRepo := decorRepo.NewMongoDecorRepo()
	discountsRepo := discountRepo.NewMongoDiscountRepo()
	transactionsRepo := transactionRepo.NewMongoTransactionRepo()
	inventoriesRepo := inventoryRepo.NewMongoInventoryRepo()
	billingSettingsRepo := settingsRepo.NewMongoSettingsRepo()

	// services.
	checker := availability.NewChecker(guestsRepo, reservationsRepo)
	settingsService := settings.NewService(billingSettingsRepo)
	ledgerService := ledger.NewService(transactionsRepo, invoicesRepo)
	inventoryService := inventory.NewService(inventoriesRepo)
	roomService := room.NewService(roomsRepo, reservationsRepo, guestsRepo)
	reservationService := reservation.NewService(reservationsRepo, roomsRepo, checker, ledgerService)
	discountService := discount.NewService(discountsRepo)
	decorService := decor.NewService(decorsRepo, inventoriesRepo, invoicesRepo, reservationsRepo)
	inventoryNotifier := tasks.NewInventoryNotifier()
	guestService := guest.NewService(
		guestsRepo,
		roomsRepo,
		reservationsRepo,
		invoicesRepo,
		decorsRepo,
		discountsRepo,
		checker,
		ledgerService,
		settingsService,
		inventoryNotifier,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Rooms:        handlers.NewRoomHandler(roomService, checker),
		Reservations: handlers.NewReservationHandler(reservationService),
		Guests:       handlers.NewGuestHandler(guestService),
		Invoices:     handlers.NewInvoiceHandler(invoicesRepo),
		Decor:        handlers.NewDecorHandler(decorService),
		Transactions: handlers.NewTransactionHandler(ledgerService),
		Inventory:    handlers.NewInventoryHandler(inventoryService),
		Discounts:    handlers.NewDiscountHandler(discountService),
		Settings:     handlers.NewSettingsHandler(settingsService),
		Storage:      handlers.NewStorageHandler(cloudinaryStorageService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background worker for check-in and checkout inventory reconciliation.
	cron.InitInventoryWorker(inventoryService)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
