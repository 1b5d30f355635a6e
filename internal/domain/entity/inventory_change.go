package entity

import "time"

// Tipos de cambio de inventario en el ledger.
const (
	ChangeTypeSale       = "sale"       // venta: delta negativo
	ChangeTypeRestock    = "restock"    // reposición: delta positivo
	ChangeTypeAdjustment = "adjustment" // ajuste: delta con signo libre
)

// InventoryChange es una entrada inmutable del ledger de movimientos de stock.
// QuantityDelta es negativo cuando el stock sale (ventas). Es la única fuente
// para el cálculo de velocidad de ventas.
type InventoryChange struct {
	ID            int64
	InventoryID   int64
	TransactionID string // UUID que agrupa cambios de una misma operación
	ChangeType    string
	QuantityDelta int
	OccurredAt    time.Time
	CreatedAt     time.Time
	CreatedBy     string
}

// ValidChangeType indica si t es un tipo de cambio conocido.
func ValidChangeType(t string) bool {
	switch t {
	case ChangeTypeSale, ChangeTypeRestock, ChangeTypeAdjustment:
		return true
	}
	return false
}
