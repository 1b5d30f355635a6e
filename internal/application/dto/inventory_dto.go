package dto

// RegisterChangeRequest body para POST /api/inventory/changes.
// Para sale y restock, Quantity son unidades (> 0); el signo del delta lo
// decide el tipo. Para adjustment, Quantity es el delta con signo (!= 0).
type RegisterChangeRequest struct {
	ProductID   int64  `json:"product_id"`
	WarehouseID int64  `json:"warehouse_id"`
	ChangeType  string `json:"change_type"`
	Quantity    int    `json:"quantity"`
}

// RegisterChangeResponse respuesta de registro de movimiento.
type RegisterChangeResponse struct {
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
	NewQuantity   int    `json:"new_quantity"`
}
