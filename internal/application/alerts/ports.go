package alerts

import (
	"context"

	"github.com/invorya/inventory-api/internal/application/dto"
	"github.com/invorya/inventory-api/internal/domain/entity"
)

// AlertCache cache opcional de respuestas de alertas (TTL corto). La ruta de
// lectura tolera datos levemente desfasados, así que no hay invalidación por
// escritura. Get devuelve (nil, nil) en miss.
type AlertCache interface {
	Get(ctx context.Context, companyID int64, windowDays int) (*dto.LowStockAlertsResponse, error)
	Set(ctx context.Context, companyID int64, windowDays int, resp *dto.LowStockAlertsResponse) error
}

// ReportGenerator genera el reporte PDF de la lista de alertas.
type ReportGenerator interface {
	GenerateLowStockReport(ctx context.Context, company *entity.Company, resp *dto.LowStockAlertsResponse, windowDays int) ([]byte, error)
}
