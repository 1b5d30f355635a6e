package catalog

import (
	"context"

	"github.com/invorya/inventory-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Hay exactamente un punto de commit: si fn
// devuelve error, todo lo escrito dentro se revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
		changeRepo repository.InventoryChangeRepository,
	) error) error
}
