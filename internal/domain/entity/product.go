package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (SKU único global).
// Price es NUMERIC en la base; nunca pasa por float64.
// LowStockThreshold es nil cuando no fue configurado: las alertas aplican
// el fallback 1 pero marcan la fila (ver alerts.LowStockUseCase).
type Product struct {
	ID                int64
	SKU               string
	Name              string
	Price             decimal.Decimal
	LowStockThreshold *int
	SupplierID        *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// EffectiveThreshold devuelve el umbral configurado o el fallback 1.
// El segundo valor indica si el umbral estaba ausente.
func (p *Product) EffectiveThreshold() (int, bool) {
	if p.LowStockThreshold == nil {
		return 1, true
	}
	return *p.LowStockThreshold, false
}
