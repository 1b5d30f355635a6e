package entity

import "time"

// Inventory representa el stock actual de un producto en una bodega.
// Invariantes (reforzadas por la base): quantity >= 0 y a lo sumo una fila
// por par (product_id, warehouse_id).
type Inventory struct {
	ID          int64
	ProductID   int64
	WarehouseID int64
	Quantity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
