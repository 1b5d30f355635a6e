package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/inventory-api/internal/domain/entity"
	"github.com/invorya/inventory-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// CreateBatch inserta todas las filas de inventario como un solo batch pgx.
// Una bodega inexistente o un par (producto, bodega) repetido hace fallar el
// batch completo; dentro de una transacción eso revierte también el producto.
func (r *InventoryRepo) CreateBatch(ctx context.Context, rows []*entity.Inventory) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, inv := range rows {
		batch.Queue(`
			INSERT INTO inventories (product_id, warehouse_id, quantity, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)`,
			inv.ProductID, inv.WarehouseID, inv.Quantity, inv.CreatedAt, inv.UpdatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	var execErr error
	for range rows {
		if _, err := br.Exec(); err != nil {
			execErr = err
			break
		}
	}
	if cerr := br.Close(); execErr == nil {
		execErr = cerr
	}
	if execErr != nil {
		if derr := translateConstraint(execErr); derr != nil {
			return derr
		}
		return fmt.Errorf("insert inventories: %w", execErr)
	}
	return nil
}

// GetByProductAndWarehouse obtiene la fila de stock. Devuelve nil si no existe.
func (r *InventoryRepo) GetByProductAndWarehouse(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	return r.get(ctx, productID, warehouseID, false)
}

// GetForUpdate obtiene la fila de stock y la bloquea (SELECT FOR UPDATE).
// Devuelve nil si no existe. Solo tiene sentido dentro de una transacción.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	return r.get(ctx, productID, warehouseID, true)
}

func (r *InventoryRepo) get(ctx context.Context, productID, warehouseID int64, forUpdate bool) (*entity.Inventory, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, created_at, updated_at
		FROM inventories WHERE product_id = $1 AND warehouse_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&inv.ID, &inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// UpdateQuantity fija la cantidad de una fila de inventario. El CHECK
// quantity >= 0 de la base respalda la validación del use case.
func (r *InventoryRepo) UpdateQuantity(ctx context.Context, inventoryID int64, quantity int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE inventories SET quantity = $2, updated_at = now() WHERE id = $1`,
		inventoryID, quantity,
	)
	if err != nil {
		if derr := translateConstraint(err); derr != nil {
			return derr
		}
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	return nil
}

// ListByProduct lista el stock de un producto en todas las bodegas.
func (r *InventoryRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.Inventory, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity, created_at, updated_at
		FROM inventories WHERE product_id = $1 ORDER BY warehouse_id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list inventories by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ID, &inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}
