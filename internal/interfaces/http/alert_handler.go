package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/inventory-api/internal/application/alerts"
	"github.com/invorya/inventory-api/internal/application/dto"
)

// AlertHandler expone las alertas de stock bajo de una empresa (protegido).
type AlertHandler struct {
	uc *alerts.LowStockUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.LowStockUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// GetLowStock devuelve las alertas de stock bajo de la empresa.
// ?window_days= ajusta la ventana de ventas (por defecto la configurada).
func (h *AlertHandler) GetLowStock(c *fiber.Ctx) error {
	companyID, ok := companyFromPath(c)
	if !ok {
		return nil
	}
	windowDays := c.QueryInt("window_days", 0)
	out, err := h.uc.GetLowStockAlerts(c.UserContext(), companyID, windowDays)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetLowStockReport genera el reporte PDF de alertas y lo devuelve inline.
func (h *AlertHandler) GetLowStockReport(c *fiber.Ctx) error {
	companyID, ok := companyFromPath(c)
	if !ok {
		return nil
	}
	windowDays := c.QueryInt("window_days", 0)
	pdfBytes, err := h.uc.GetLowStockReport(c.UserContext(), companyID, windowDays)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="stock-bajo-%d.pdf"`, companyID))
	return c.Send(pdfBytes)
}

// companyFromPath valida que el :id de la ruta coincida con la empresa del
// token. Un token de otra empresa no puede leer alertas ajenas. Si la
// validación falla, la respuesta ya quedó escrita y devuelve ok=false.
func companyFromPath(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Error: "company id inválido"})
		return 0, false
	}
	if int64(id) != GetCompanyID(c) {
		_ = c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Error: "sin permisos sobre esta empresa"})
		return 0, false
	}
	return int64(id), true
}
