package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cartApi "github.com/ridloal/pos-caisse/internal/cart/api"
	cartService "github.com/ridloal/pos-caisse/internal/cart/service"
	catalogApi "github.com/ridloal/pos-caisse/internal/catalog/api"
	catalogRepository "github.com/ridloal/pos-caisse/internal/catalog/repository"
	catalogService "github.com/ridloal/pos-caisse/internal/catalog/service"
	checkoutApi "github.com/ridloal/pos-caisse/internal/checkout/api"
	checkoutService "github.com/ridloal/pos-caisse/internal/checkout/service"
	contactApi "github.com/ridloal/pos-caisse/internal/contact/api"
	contactRepository "github.com/ridloal/pos-caisse/internal/contact/repository"
	contactService "github.com/ridloal/pos-caisse/internal/contact/service"
	dashboardApi "github.com/ridloal/pos-caisse/internal/dashboard/api"
	dashboardService "github.com/ridloal/pos-caisse/internal/dashboard/service"
	operatorApi "github.com/ridloal/pos-caisse/internal/operator/api"
	operatorRepository "github.com/ridloal/pos-caisse/internal/operator/repository"
	operatorService "github.com/ridloal/pos-caisse/internal/operator/service"
	"github.com/ridloal/pos-caisse/internal/platform/config"
	"github.com/ridloal/pos-caisse/internal/platform/database"
	"github.com/ridloal/pos-caisse/internal/platform/logger"
	"github.com/ridloal/pos-caisse/internal/platform/seed"
	salesApi "github.com/ridloal/pos-caisse/internal/sales/api"
	salesRepository "github.com/ridloal/pos-caisse/internal/sales/repository"
	salesService "github.com/ridloal/pos-caisse/internal/sales/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	defer logger.Sync()

	// Load Config
	serverCfg := config.LoadServerConfig("8080")
	posCfg := config.LoadPOSConfig()

	logger.Info("Starting POS Service...", "tax_rate", posCfg.TaxRate.String(), "auth_required", posCfg.AuthRequired)

	dataset, err := seed.Default(time.Now())
	if err != nil {
		logger.Error("Failed to load seed dataset", err)
		return
	}

	// Setup Databases (empty DSN keeps the in-memory stores)
	catalogDB, err := database.ConnectOptional("catalog", config.LoadCatalogDBConfig().DSN)
	if err != nil {
		logger.Error("Failed to connect to catalog database", err)
		return
	}
	salesDB, err := database.ConnectOptional("sales", config.LoadSalesDBConfig().DSN)
	if err != nil {
		logger.Error("Failed to connect to sales database", err)
		return
	}
	operatorDB, err := database.ConnectOptional("operators", config.LoadOperatorDBConfig().DSN)
	if err != nil {
		logger.Error("Failed to connect to operator database", err)
		return
	}
	defer closeAll(catalogDB, salesDB, operatorDB)

	// Setup Dependencies
	catalogRepo := catalogRepository.NewMemoryCatalogRepository(dataset.Products, dataset.Categories)
	if catalogDB != nil {
		catalogRepo = catalogRepository.NewPostgresCatalogRepository(catalogDB)
	}
	saleRepo := salesRepository.NewMemorySaleRepository(dataset.Sales)
	if salesDB != nil {
		saleRepo = salesRepository.NewPostgresSaleRepository(salesDB)
	}
	operatorRepo := operatorRepository.NewMemoryOperatorRepository()
	if operatorDB != nil {
		operatorRepo = operatorRepository.NewPostgresOperatorRepository(operatorDB)
	}
	customerRepo := contactRepository.NewMemoryCustomerRepository(dataset.Customers)

	catSvc := catalogService.NewCatalogService(catalogRepo, posCfg.LowStockThreshold)
	contactSvc := contactService.NewContactService(customerRepo)
	ledgerSvc := salesService.NewLedgerService(saleRepo, nil)
	carts := cartService.NewCartService(catalogRepo)
	resolver := checkoutService.NewResolver(ledgerSvc, contactSvc, posCfg.TaxRate)
	checkoutSvc := checkoutService.NewCheckoutService(carts, resolver)
	dashSvc := dashboardService.NewDashboardService(ledgerSvc, catSvc, contactSvc)
	opSvc := operatorService.NewOperatorService(operatorRepo, posCfg.JWTSecret, nil)

	stopReports, err := ledgerSvc.StartReportScheduler(posCfg.ReportSpec)
	if err != nil {
		logger.Error("Failed to start daily report scheduler", err, "spec", posCfg.ReportSpec)
		return
	}
	defer stopReports()

	// Setup Gin Router
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if posCfg.PrometheusEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	var guards []gin.HandlerFunc
	if posCfg.AuthRequired {
		guards = append(guards, operatorApi.AuthMiddleware(opSvc))
	}

	apiV1 := router.Group("/api/v1")
	catalogApi.NewCatalogHandler(catSvc).RegisterRoutes(apiV1)
	cartApi.NewCartHandler(carts, posCfg.TaxRate).RegisterRoutes(apiV1)
	checkoutApi.NewCheckoutHandler(checkoutSvc).RegisterRoutes(apiV1, guards...)
	salesApi.NewSalesHandler(ledgerSvc).RegisterRoutes(apiV1, guards...)
	contactApi.NewContactHandler(contactSvc).RegisterRoutes(apiV1)
	dashboardApi.NewDashboardHandler(dashSvc).RegisterRoutes(apiV1)
	operatorApi.NewOperatorHandler(opSvc).RegisterRoutes(apiV1)

	server := &http.Server{Addr: serverCfg.Port, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("POS Service running on port " + serverCfg.Port)
		if errSrv := server.ListenAndServe(); errSrv != nil && !errors.Is(errSrv, http.ErrServerClosed) {
			logger.Error("Failed to run POS Service server", errSrv)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down POS Service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", err)
	}
}

func closeAll(dbs ...*sql.DB) {
	for _, db := range dbs {
		if db != nil {
			db.Close()
		}
	}
}
