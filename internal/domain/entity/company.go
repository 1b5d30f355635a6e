package entity

import "time"

// Company representa una organización/tenant del sistema. Las bodegas
// pertenecen a una empresa; los productos son catálogo global (SKU único).
type Company struct {
	ID        int64
	Name      string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
