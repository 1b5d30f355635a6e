package dto

import "github.com/shopspring/decimal"

// SupplierDTO proveedor embebido en cada alerta (uno por producto).
type SupplierDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
}

// LowStockAlertDTO una alerta accionable: producto bajo umbral en una bodega
// y con ventas recientes. El mismo producto puede aparecer varias veces si
// está bajo umbral en varias bodegas.
type LowStockAlertDTO struct {
	ProductID         int64           `json:"product_id"`
	ProductName       string          `json:"product_name"`
	SKU               string          `json:"sku"`
	WarehouseID       int64           `json:"warehouse_id"`
	WarehouseName     string          `json:"warehouse_name"`
	CurrentStock      int             `json:"current_stock"`
	Threshold         int             `json:"threshold"`
	ThresholdMissing  bool            `json:"threshold_missing,omitempty"`
	AvgDailySales     decimal.Decimal `json:"avg_daily_sales"`
	DaysUntilStockout *int64          `json:"days_until_stockout"` // null cuando no estimable
	Supplier          SupplierDTO     `json:"supplier"`
}

// LowStockAlertsResponse respuesta de GET .../alerts/low-stock.
type LowStockAlertsResponse struct {
	Alerts      []LowStockAlertDTO `json:"alerts"`
	TotalAlerts int                `json:"total_alerts"`
}
