package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/inventory-api/internal/application/alerts"
	"github.com/invorya/inventory-api/internal/application/auth"
	"github.com/invorya/inventory-api/internal/application/catalog"
	"github.com/invorya/inventory-api/internal/application/inventory"
	"github.com/invorya/inventory-api/internal/application/usecase"
	"github.com/invorya/inventory-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC      *usecase.CompanyUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	SupplierUC     *usecase.SupplierUseCase
	ProductUC      *catalog.ProductUseCase
	RegisterChange *inventory.RegisterChangeUseCase
	LowStockUC     *alerts.LowStockUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	companyHandler := NewCompanyHandler(deps.CompanyUC)

	// Companies: Create es público (aprovisionamiento inicial, el primer
	// usuario necesita una empresa a la cual registrarse).
	companies := api.Group("/companies")
	companies.Post("/", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies (lectura, protegido)
	companiesProt := protected.Group("/companies")
	companiesProt.Get("/", companyHandler.List)
	companiesProt.Get("/:id", companyHandler.GetByID)

	// Alertas de stock bajo (protegido, por empresa)
	alertHandler := NewAlertHandler(deps.LowStockUC)
	companiesProt.Get("/:id/alerts/low-stock", alertHandler.GetLowStock)
	companiesProt.Get("/:id/alerts/low-stock/report", alertHandler.GetLowStockReport)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Products (protegido; crear catálogo es de admin/bodeguero)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Inventory changes (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterChange)
	invGroup.Post("/changes", inventoryHandler.RegisterChange)
}
