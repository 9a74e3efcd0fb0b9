package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jfvaldes/ventapro-api/internal/application/credit"
	"github.com/jfvaldes/ventapro-api/internal/application/inventory"
	"github.com/jfvaldes/ventapro-api/internal/application/sales"
	"github.com/jfvaldes/ventapro-api/internal/application/usecase"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
	"github.com/jfvaldes/ventapro-api/internal/infrastructure/fiscal"
	"github.com/jfvaldes/ventapro-api/internal/infrastructure/memory"
	infrapdf "github.com/jfvaldes/ventapro-api/internal/infrastructure/pdf"
	"github.com/jfvaldes/ventapro-api/internal/infrastructure/postgres"
	httpRouter "github.com/jfvaldes/ventapro-api/internal/interfaces/http"
	"github.com/jfvaldes/ventapro-api/pkg/config"
	"github.com/jfvaldes/ventapro-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	var (
		productRepo  repository.ProductRepository
		categoryRepo repository.CategoryRepository
		supplierRepo repository.SupplierRepository
		clientRepo   repository.ClientRepository
		userRepo     repository.UserRepository
		accountRepo  repository.CashAccountRepository
		saleRepo     repository.SaleRepository
		movementRepo repository.StockMovementRepository
		invTx        inventory.TxRunner
		saleTx       sales.TxRunner
	)

	if cfg.DB.Configured() {
		pool, err := postgres.NewPool(context.Background(), cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		productRepo = postgres.NewProductRepository(pool)
		categoryRepo = postgres.NewCategoryRepository(pool)
		supplierRepo = postgres.NewSupplierRepository(pool)
		clientRepo = postgres.NewClientRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
		accountRepo = postgres.NewCashAccountRepository(pool)
		saleRepo = postgres.NewSaleRepository(pool)
		movementRepo = postgres.NewStockMovementRepository(pool)
		runner := postgres.NewTxRunner(pool)
		invTx, saleTx = runner, runner
	} else {
		log.Warn().Msg("sin base de datos configurada, usando almacén en memoria (los datos no persisten)")
		store := memory.NewStore()
		productRepo = memory.NewProductRepository(store)
		categoryRepo = memory.NewCategoryRepository(store)
		supplierRepo = memory.NewSupplierRepository(store)
		clientRepo = memory.NewClientRepository(store)
		userRepo = memory.NewUserRepository(store)
		accountRepo = memory.NewCashAccountRepository(store)
		saleRepo = memory.NewSaleRepository(store)
		movementRepo = memory.NewStockMovementRepository(store)
		runner := memory.NewTxRunner(store)
		invTx, saleTx = runner, runner
	}

	productUC := usecase.NewProductUseCase(productRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	accountUC := usecase.NewCashAccountUseCase(accountRepo)

	createSaleUC := sales.NewCreateSaleUseCase(saleTx, productRepo, clientRepo)
	cancelSaleUC := sales.NewCancelSaleUseCase(saleTx, log)
	saleQueryUC := sales.NewSaleQueryUseCase(saleRepo)
	saleExportUC := sales.NewSaleExportUseCase(
		saleRepo, clientRepo,
		infrapdf.NewReceiptGenerator(cfg.Store),
		fiscal.NewExporter(cfg.Store),
	)

	registerMovementUC := inventory.NewRegisterMovementUseCase(invTx, productRepo)
	inventoryQueryUC := inventory.NewInventoryQueryUseCase(productRepo, movementRepo)
	paymentsUC := credit.NewPaymentUseCase(clientRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "VentaPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "env": cfg.App.Env})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		CategoryUC:       categoryUC,
		SupplierUC:       supplierUC,
		ClientUC:         clientUC,
		UserUC:           userUC,
		AccountUC:        accountUC,
		CreateSale:       createSaleUC,
		CancelSale:       cancelSaleUC,
		SaleQueries:      saleQueryUC,
		SaleExport:       saleExportUC,
		RegisterMovement: registerMovementUC,
		InventoryQueries: inventoryQueryUC,
		Payments:         paymentsUC,
	})

	var monitor *inventory.StockAlertMonitor
	if cfg.Alerts.Enabled {
		monitor = inventory.NewStockAlertMonitor(productRepo, inventory.NewLogNotifier(log), log, cfg.Alerts.Cron)
		if err := monitor.Start(); err != nil {
			log.Fatal().Err(err).Str("cron", cfg.Alerts.Cron).Msg("monitor de stock bajo")
		}
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if monitor != nil {
		monitor.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
