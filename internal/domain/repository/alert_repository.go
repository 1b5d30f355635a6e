package repository

import "context"

// UnderstockedRow resultado crudo del repositorio para una fila de inventario
// por debajo del umbral del producto. La DB aplica el fallback de umbral (1);
// ThresholdMissing marca cuándo se aplicó, para que el use case lo registre.
type UnderstockedRow struct {
	InventoryID      int64
	ProductID        int64
	ProductName      string
	SKU              string
	WarehouseID      int64
	WarehouseName    string
	CurrentStock     int
	Threshold        int
	ThresholdMissing bool
	SupplierID       int64
	SupplierName     string
	SupplierEmail    string
}

// AlertRepository define las consultas de lectura para alertas de stock bajo.
// Las implementaciones son read-only (no modifican datos).
type AlertRepository interface {
	// FindUnderstocked devuelve las filas de inventario de las bodegas de la
	// empresa cuyo stock está por debajo del umbral efectivo del producto,
	// con producto, bodega y proveedor ya unidos. No aplica el filtro de
	// ventas recientes: eso lo decide el use case con el agregador.
	FindUnderstocked(ctx context.Context, companyID int64) ([]UnderstockedRow, error)
}
