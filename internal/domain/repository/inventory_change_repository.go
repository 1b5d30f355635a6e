package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/invorya/inventory-api/internal/domain/entity"
)

// InventoryChangeRepository define el puerto del ledger de movimientos.
// Las filas son append-only: no hay Update ni Delete.
type InventoryChangeRepository interface {
	Create(ctx context.Context, change *entity.InventoryChange) error

	// AvgDailySales calcula la venta diaria promedio por fila de inventario:
	// suma de unidades vendidas (deltas negativos de tipo 'sale') dentro de la
	// ventana móvil de windowDays, dividida por windowDays. El divisor es fijo
	// por diseño: diluye ventas puntuales sobre toda la ventana.
	// Las filas sin ventas en la ventana NO aparecen en el mapa.
	AvgDailySales(ctx context.Context, inventoryIDs []int64, windowDays int) (map[int64]decimal.Decimal, error)
}
