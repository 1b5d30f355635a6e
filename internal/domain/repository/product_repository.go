package repository

import (
	"context"

	"github.com/invorya/inventory-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Create asigna el ID generado por la base sobre el mismo struct.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
