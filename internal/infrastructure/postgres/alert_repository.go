package postgres

import (
	"context"
	"fmt"

	"github.com/invorya/inventory-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo consultas de solo lectura para alertas de stock bajo.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador de alertas.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// FindUnderstocked devuelve las filas de inventario de las bodegas de la
// empresa con stock por debajo del umbral efectivo del producto
// (COALESCE(low_stock_threshold, 1): fallback de seguridad, no default de
// negocio). El join de proveedor es interno: un producto sin proveedor no
// puede generar una alerta accionable. El filtro de ventas recientes lo
// aplica el use case con el agregador del ledger.
func (r *AlertRepo) FindUnderstocked(ctx context.Context, companyID int64) ([]repository.UnderstockedRow, error) {
	const query = `
	SELECT
	    i.id                                   AS inventory_id,
	    p.id                                   AS product_id,
	    p.name                                 AS product_name,
	    p.sku,
	    i.warehouse_id,
	    w.name                                 AS warehouse_name,
	    i.quantity                             AS current_stock,
	    COALESCE(p.low_stock_threshold, 1)     AS threshold,
	    (p.low_stock_threshold IS NULL)        AS threshold_missing,
	    s.id                                   AS supplier_id,
	    s.name                                 AS supplier_name,
	    s.contact_email
	FROM inventories i
	JOIN products   p ON p.id = i.product_id
	JOIN warehouses w ON w.id = i.warehouse_id
	JOIN suppliers  s ON s.id = p.supplier_id
	WHERE w.company_id = $1
	  AND i.quantity   < COALESCE(p.low_stock_threshold, 1)
	ORDER BY p.sku, i.warehouse_id`

	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("find understocked: %w", err)
	}
	defer rows.Close()

	var result []repository.UnderstockedRow
	for rows.Next() {
		var row repository.UnderstockedRow
		if err := rows.Scan(
			&row.InventoryID,
			&row.ProductID,
			&row.ProductName,
			&row.SKU,
			&row.WarehouseID,
			&row.WarehouseName,
			&row.CurrentStock,
			&row.Threshold,
			&row.ThresholdMissing,
			&row.SupplierID,
			&row.SupplierName,
			&row.SupplierEmail,
		); err != nil {
			return nil, fmt.Errorf("scan understocked row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
