package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"roastery-backend/internal/auth"
	"roastery-backend/internal/cache"
	"roastery-backend/internal/config"
	"roastery-backend/internal/database"
	"roastery-backend/internal/db"
	"roastery-backend/internal/handlers"
	"roastery-backend/internal/health"
	roasteryhttp "roastery-backend/internal/http"
	"roastery-backend/internal/loyalty"
	"roastery-backend/internal/middleware"
	"roastery-backend/internal/monitoring"
	"roastery-backend/internal/repositories"
	"roastery-backend/internal/services"
)

func loadPolicy(cfg *config.Config) loyalty.Policy {
	policy := loyalty.DefaultPolicy()

	if cfg.Loyalty.GoldThreshold != "" {
		threshold, err := decimal.NewFromString(cfg.Loyalty.GoldThreshold)
		if err != nil {
			log.Fatalf("invalid loyalty.gold_threshold %q: %v", cfg.Loyalty.GoldThreshold, err)
		}
		policy.GoldThreshold = threshold
	}
	if cfg.Loyalty.DiscountPercent > 0 {
		policy.DiscountPercent = cfg.Loyalty.DiscountPercent
	}
	return policy
}

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.NewMigrator(pool).RunMigrations(ctx); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}
	cancel()

	if err := cache.Init(); err != nil {
		log.Printf("[Redis] unavailable, running without cache: %v", err)
	}

	policy := loadPolicy(cfg)
	log.Printf("[Loyalty] gold threshold %s, discount %d%%",
		policy.GoldThreshold.String(), policy.DiscountPercent)

	// Repositories
	customerRepo := repositories.NewCustomerRepository(pool)
	purchaseRepo := repositories.NewPurchaseRepository(pool, policy)
	transactionRepo := repositories.NewTransactionRepository(pool)
	statsRepo := repositories.NewStatsRepository(pool)
	catalogRepo := repositories.NewCatalogRepository(pool)
	userRepo := repositories.NewUserRepository(pool)
	loginLogRepo := repositories.NewLoginLogRepository(pool)
	totpRepo := repositories.NewTOTPRepository(pool)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	totpService := services.NewTOTPService(totpRepo, userRepo)
	userService := services.NewUserService(userRepo, jwtManager, totpService)
	customerService := services.NewCustomerService(customerRepo)
	purchaseService := services.NewPurchaseService(purchaseRepo, customerRepo)
	transactionService := services.NewTransactionService(transactionRepo)
	statsService := services.NewStatsService(statsRepo)
	catalogService := services.NewCatalogService(catalogRepo)
	reportService := services.NewReportService(statsService, transactionService)

	// Monitoring dashboard on its own port, fed by the purchase workflow
	monitoringServer := monitoring.NewMonitoringServer(pool, cfg.Server.MonitoringPort)
	purchaseService.SetSaleListener(monitoringServer.BroadcastSale)
	go monitoringServer.Start()

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, jwtManager, loginLogRepo)
	totpHandler := handlers.NewTOTPHandler(totpService)
	userHandler := handlers.NewUserHandler(userService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	statsHandler := handlers.NewStatsHandler(statsService)
	reportHandler := handlers.NewReportHandler(reportService)
	loginLogHandler := handlers.NewLoginLogHandler(loginLogRepo)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := roasteryhttp.NewRouter(
		authHandler,
		totpHandler,
		userHandler,
		customerHandler,
		purchaseHandler,
		transactionHandler,
		catalogHandler,
		statsHandler,
		reportHandler,
		loginLogHandler,
		healthHandler,
		authMiddleware,
	)

	cors := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(cors(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
