package entity

import "time"

// Supplier representa el proveedor de un producto. El modelo actual asume
// exactamente un proveedor por producto (FK simple en Product).
type Supplier struct {
	ID           int64
	Name         string
	ContactEmail string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
