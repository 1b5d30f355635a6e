package alerts

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/invorya/inventory-api/internal/application/dto"
	"github.com/invorya/inventory-api/internal/domain"
	"github.com/invorya/inventory-api/internal/domain/repository"
	"github.com/invorya/inventory-api/pkg/logger"
)

// LowStockUseCase calcula las alertas de stock bajo de una empresa.
//
// Pipeline de lectura: filas bajo umbral (query con joins) → velocidad de
// ventas por fila de inventario (agregador sobre el ledger) → ensamblado de
// alertas. Una fila bajo umbral SIN ventas recientes no es una alerta:
// "alerta" significa quiebre accionable, no mero quiebre.
type LowStockUseCase struct {
	alertRepo   repository.AlertRepository
	changeRepo  repository.InventoryChangeRepository
	companyRepo repository.CompanyRepository
	cache       AlertCache // nil = sin cache
	report      ReportGenerator
	windowDays  int // ventana por defecto (configurable, 30)
	log         *logger.Logger
}

// NewLowStockUseCase construye el caso de uso. cache y report pueden ser nil.
func NewLowStockUseCase(
	alertRepo repository.AlertRepository,
	changeRepo repository.InventoryChangeRepository,
	companyRepo repository.CompanyRepository,
	cache AlertCache,
	report ReportGenerator,
	windowDays int,
	log *logger.Logger,
) *LowStockUseCase {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &LowStockUseCase{
		alertRepo:   alertRepo,
		changeRepo:  changeRepo,
		companyRepo: companyRepo,
		cache:       cache,
		report:      report,
		windowDays:  windowDays,
		log:         log,
	}
}

// GetLowStockAlerts devuelve las alertas de la empresa. windowDays <= 0 usa
// la ventana configurada. La lectura no tiene estado transaccional: un fallo
// se propaga sin efectos secundarios.
func (uc *LowStockUseCase) GetLowStockAlerts(ctx context.Context, companyID int64, windowDays int) (*dto.LowStockAlertsResponse, error) {
	if windowDays <= 0 {
		windowDays = uc.windowDays
	}

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, companyID, windowDays); err != nil {
			// Un fallo del cache nunca tumba la lectura.
			uc.log.Warn().Err(err).Int64("company_id", companyID).Msg("cache de alertas: fallo en lectura")
		} else if cached != nil {
			return cached, nil
		}
	}

	rows, err := uc.alertRepo.FindUnderstocked(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := &dto.LowStockAlertsResponse{Alerts: []dto.LowStockAlertDTO{}}
	if len(rows) > 0 {
		inventoryIDs := make([]int64, 0, len(rows))
		for _, r := range rows {
			inventoryIDs = append(inventoryIDs, r.InventoryID)
		}

		sales, err := uc.changeRepo.AvgDailySales(ctx, inventoryIDs, windowDays)
		if err != nil {
			return nil, err
		}

		for _, r := range rows {
			avg, ok := sales[r.InventoryID]
			if !ok || !avg.IsPositive() {
				// Ausente en el mapa = sin ventas en la ventana: se excluye
				// aunque esté bajo umbral.
				continue
			}
			if r.ThresholdMissing {
				// Fallback enmascarador: se alerta igual, pero queda rastro.
				uc.log.Warn().
					Int64("product_id", r.ProductID).
					Str("sku", r.SKU).
					Msg("producto sin low_stock_threshold configurado; usando fallback 1")
			}
			resp.Alerts = append(resp.Alerts, assembleAlert(r, avg))
		}
	}
	resp.TotalAlerts = len(resp.Alerts)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, companyID, windowDays, resp); err != nil {
			uc.log.Warn().Err(err).Int64("company_id", companyID).Msg("cache de alertas: fallo en escritura")
		}
	}
	return resp, nil
}

// GetLowStockReport genera el PDF con la lista de alertas de la empresa.
func (uc *LowStockUseCase) GetLowStockReport(ctx context.Context, companyID int64, windowDays int) ([]byte, error) {
	if uc.report == nil {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if windowDays <= 0 {
		windowDays = uc.windowDays
	}
	resp, err := uc.GetLowStockAlerts(ctx, companyID, windowDays)
	if err != nil {
		return nil, err
	}
	return uc.report.GenerateLowStockReport(ctx, company, resp, windowDays)
}

// assembleAlert da forma final a una alerta a partir de la fila cruda y la
// velocidad de ventas. days_until_stockout = ceil(stock / venta diaria);
// la rama avg <= 0 es inalcanzable tras el filtro, pero se mantiene por
// defensa (devuelve null).
func assembleAlert(r repository.UnderstockedRow, avg decimal.Decimal) dto.LowStockAlertDTO {
	var daysUntilStockout *int64
	if avg.IsPositive() {
		days := decimal.NewFromInt(int64(r.CurrentStock)).Div(avg).Ceil().IntPart()
		daysUntilStockout = &days
	}
	return dto.LowStockAlertDTO{
		ProductID:         r.ProductID,
		ProductName:       r.ProductName,
		SKU:               r.SKU,
		WarehouseID:       r.WarehouseID,
		WarehouseName:     r.WarehouseName,
		CurrentStock:      r.CurrentStock,
		Threshold:         r.Threshold,
		ThresholdMissing:  r.ThresholdMissing,
		AvgDailySales:     avg,
		DaysUntilStockout: daysUntilStockout,
		Supplier: dto.SupplierDTO{
			ID:           r.SupplierID,
			Name:         r.SupplierName,
			ContactEmail: r.SupplierEmail,
		},
	}
}
