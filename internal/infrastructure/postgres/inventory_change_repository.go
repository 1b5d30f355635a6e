package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/invorya/inventory-api/internal/domain/entity"
	"github.com/invorya/inventory-api/internal/domain/repository"
)

var _ repository.InventoryChangeRepository = (*InventoryChangeRepo)(nil)

// InventoryChangeRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// Solo inserta y agrega: las filas del ledger son inmutables.
type InventoryChangeRepo struct {
	q Querier
}

// NewInventoryChangeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryChangeRepository(q Querier) *InventoryChangeRepo {
	return &InventoryChangeRepo{q: q}
}

// Create agrega una entrada al ledger.
func (r *InventoryChangeRepo) Create(ctx context.Context, change *entity.InventoryChange) error {
	query := `
		INSERT INTO inventory_changes (inventory_id, transaction_id, change_type, quantity_delta, occurred_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		change.InventoryID, change.TransactionID, change.ChangeType,
		change.QuantityDelta, change.OccurredAt, change.CreatedAt, change.CreatedBy,
	).Scan(&change.ID)
	if err != nil {
		if derr := translateConstraint(err); derr != nil {
			return derr
		}
		return fmt.Errorf("insert inventory change: %w", err)
	}
	return nil
}

// AvgDailySales suma las unidades vendidas (deltas negativos de tipo 'sale')
// de los últimos windowDays por fila de inventario y divide por windowDays.
// El divisor es la ventana completa, no los días con ventas: política
// deliberada que diluye ventas puntuales. Filas sin ventas no aparecen.
func (r *InventoryChangeRepo) AvgDailySales(ctx context.Context, inventoryIDs []int64, windowDays int) (map[int64]decimal.Decimal, error) {
	if len(inventoryIDs) == 0 {
		return map[int64]decimal.Decimal{}, nil
	}
	query := `
		SELECT
		    ic.inventory_id,
		    SUM(-ic.quantity_delta)::numeric / $2 AS avg_daily_sales
		FROM inventory_changes ic
		WHERE ic.inventory_id = ANY($1)
		  AND ic.change_type  = 'sale'
		  AND ic.occurred_at >= now() - make_interval(days => $2)
		GROUP BY ic.inventory_id`
	rows, err := r.q.Query(ctx, query, inventoryIDs, windowDays)
	if err != nil {
		return nil, fmt.Errorf("avg daily sales: %w", err)
	}
	defer rows.Close()

	result := make(map[int64]decimal.Decimal, len(inventoryIDs))
	for rows.Next() {
		var inventoryID int64
		var avg decimal.Decimal
		if err := rows.Scan(&inventoryID, &avg); err != nil {
			return nil, fmt.Errorf("scan avg daily sales: %w", err)
		}
		result[inventoryID] = avg
	}
	return result, rows.Err()
}
