package repository

import (
	"context"

	"github.com/invorya/inventory-api/internal/domain/entity"
)

// InventoryRepository define el puerto para las filas de stock por
// (producto, bodega). CreateBatch inserta todas las filas como un solo batch;
// dentro de una transacción, cualquier fallo revierte el conjunto completo.
type InventoryRepository interface {
	CreateBatch(ctx context.Context, rows []*entity.Inventory) error
	GetByProductAndWarehouse(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error)

	// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE) para
	// actualizaciones de stock libres de carreras. Solo tiene sentido dentro
	// de una transacción.
	GetForUpdate(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error)
	UpdateQuantity(ctx context.Context, inventoryID int64, quantity int) error
	ListByProduct(ctx context.Context, productID int64) ([]*entity.Inventory, error)
}
