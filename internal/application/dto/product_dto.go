package dto

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/inventory-api/internal/domain"
)

// WarehouseQuantityInput una entrada de warehouse_quantities. Los campos son
// punteros para distinguir ausente de cero durante la validación.
type WarehouseQuantityInput struct {
	WarehouseID *int64 `json:"warehouse_id"`
	Quantity    *int   `json:"quantity"`
}

// CreateProductRequest body para POST /api/products.
// Price se captura como JSON crudo: acepta número o string y se parsea con
// decimal.NewFromString, de modo que el valor monetario nunca pasa por float64.
type CreateProductRequest struct {
	Name                string                   `json:"name"`
	SKU                 string                   `json:"sku"`
	Price               json.RawMessage          `json:"price"`
	LowStockThreshold   *int                     `json:"low_stock_threshold"`
	SupplierID          *int64                   `json:"supplier_id"`
	WarehouseQuantities []WarehouseQuantityInput `json:"warehouse_quantities"`
}

// WarehouseQuantity par validado (bodega, cantidad inicial).
type WarehouseQuantity struct {
	WarehouseID int64
	Quantity    int
}

// CreateProductInput petición ya validada, lista para el writer transaccional.
type CreateProductInput struct {
	Name              string
	SKU               string
	Price             decimal.Decimal
	LowStockThreshold *int
	SupplierID        *int64
	Warehouses        []WarehouseQuantity
}

// Validate es la puerta de validación: puramente estructural, sin acceso a
// la base. Cualquier entrada inválida rechaza la petición completa (no hay
// aceptación parcial del subconjunto válido).
func (r *CreateProductRequest) Validate() (*CreateProductInput, error) {
	if strings.TrimSpace(r.Name) == "" {
		return nil, domain.NewValidationError("name", "es requerido")
	}
	if strings.TrimSpace(r.SKU) == "" {
		return nil, domain.NewValidationError("sku", "es requerido")
	}
	price, err := parsePrice(r.Price)
	if err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, domain.NewValidationError("price", "no puede ser negativo")
	}
	if r.LowStockThreshold != nil && *r.LowStockThreshold < 0 {
		return nil, domain.NewValidationError("low_stock_threshold", "debe ser un entero >= 0")
	}
	if len(r.WarehouseQuantities) == 0 {
		return nil, domain.NewValidationError("warehouse_quantities", "debe ser una lista no vacía")
	}

	warehouses := make([]WarehouseQuantity, 0, len(r.WarehouseQuantities))
	for _, wq := range r.WarehouseQuantities {
		if wq.WarehouseID == nil || *wq.WarehouseID <= 0 {
			return nil, domain.NewValidationError("warehouse_quantities", "cada entrada requiere warehouse_id")
		}
		if wq.Quantity == nil || *wq.Quantity < 0 {
			return nil, domain.NewValidationError("warehouse_quantities", "cada entrada requiere quantity entero >= 0")
		}
		warehouses = append(warehouses, WarehouseQuantity{WarehouseID: *wq.WarehouseID, Quantity: *wq.Quantity})
	}

	return &CreateProductInput{
		Name:              strings.TrimSpace(r.Name),
		SKU:               strings.TrimSpace(r.SKU),
		Price:             price,
		LowStockThreshold: r.LowStockThreshold,
		SupplierID:        r.SupplierID,
		Warehouses:        warehouses,
	}, nil
}

// parsePrice acepta `12.50` o `"12.50"` y rechaza cualquier otra forma.
func parsePrice(raw json.RawMessage) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return decimal.Decimal{}, domain.NewValidationError("price", "es requerido")
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return decimal.Decimal{}, domain.NewValidationError("price", "formato inválido")
		}
		s = strings.TrimSpace(unquoted)
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, domain.NewValidationError("price", "debe ser un decimal válido")
	}
	return price, nil
}

// CreateProductResponse respuesta de creación exitosa.
type CreateProductResponse struct {
	Message   string `json:"message"`
	ProductID int64  `json:"product_id"`
}

// ProductStockDTO stock de un producto en una bodega.
type ProductStockDTO struct {
	WarehouseID int64 `json:"warehouse_id"`
	Quantity    int   `json:"quantity"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                int64             `json:"id"`
	SKU               string            `json:"sku"`
	Name              string            `json:"name"`
	Price             decimal.Decimal   `json:"price"`
	LowStockThreshold *int              `json:"low_stock_threshold"`
	SupplierID        *int64            `json:"supplier_id"`
	Stock             []ProductStockDTO `json:"stock,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
