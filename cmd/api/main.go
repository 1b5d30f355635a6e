package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	goredis "github.com/redis/go-redis/v9"

	"github.com/invorya/inventory-api/internal/application/alerts"
	"github.com/invorya/inventory-api/internal/application/auth"
	"github.com/invorya/inventory-api/internal/application/catalog"
	"github.com/invorya/inventory-api/internal/application/inventory"
	"github.com/invorya/inventory-api/internal/application/usecase"
	infrapdf "github.com/invorya/inventory-api/internal/infrastructure/pdf"
	"github.com/invorya/inventory-api/internal/infrastructure/postgres"
	infraredis "github.com/invorya/inventory-api/internal/infrastructure/redis"
	httpRouter "github.com/invorya/inventory-api/internal/interfaces/http"
	"github.com/invorya/inventory-api/pkg/config"
	"github.com/invorya/inventory-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	changeRepo := postgres.NewInventoryChangeRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de alertas: Redis opcional (REDIS_ADDR vacío lo deshabilita).
	var alertCache alerts.AlertCache
	if cfg.Redis.Addr != "" {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible; alertas sin cache")
		} else {
			alertCache = infraredis.NewAlertCache(rdb, time.Duration(cfg.Alerts.CacheTTLSeconds)*time.Second)
			defer rdb.Close()
		}
	}

	reportGen := infrapdf.NewMarotoReportGenerator()

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	productUC := catalog.NewProductUseCase(txRunner, productRepo, inventoryRepo)
	registerChangeUC := inventory.NewRegisterChangeUseCase(txRunner, warehouseRepo)
	lowStockUC := alerts.NewLowStockUseCase(
		alertRepo, changeRepo, companyRepo,
		alertCache, reportGen,
		cfg.Alerts.SalesWindowDays, log,
	)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:      companyUC,
		WarehouseUC:    warehouseUC,
		SupplierUC:     supplierUC,
		ProductUC:      productUC,
		RegisterChange: registerChangeUC,
		LowStockUC:     lowStockUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
