package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/inventory-api/internal/application/dto"
	"github.com/invorya/inventory-api/internal/application/inventory"
)

// InventoryHandler registra movimientos de stock en el ledger (protegido).
type InventoryHandler struct {
	uc *inventory.RegisterChangeUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterChangeUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterChange aplica un movimiento (sale, restock, adjustment) sobre la
// fila (producto, bodega) y agrega la entrada al ledger. 409 si la venta
// dejaría el stock negativo.
func (h *InventoryHandler) RegisterChange(c *fiber.Ctx) error {
	var in dto.RegisterChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterChange(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
