package alerts_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/inventory-api/internal/application/alerts"
	"github.com/invorya/inventory-api/internal/application/dto"
	"github.com/invorya/inventory-api/internal/domain/entity"
	"github.com/invorya/inventory-api/internal/domain/repository"
	"github.com/invorya/inventory-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeAlertRepo struct {
	rows  []repository.UnderstockedRow
	err   error
	calls int
}

func (f *fakeAlertRepo) FindUnderstocked(_ context.Context, _ int64) ([]repository.UnderstockedRow, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

type fakeChangeRepo struct {
	sales map[int64]decimal.Decimal
	err   error
	gotWindow int
}

func (f *fakeChangeRepo) Create(_ context.Context, _ *entity.InventoryChange) error { return nil }

func (f *fakeChangeRepo) AvgDailySales(_ context.Context, _ []int64, windowDays int) (map[int64]decimal.Decimal, error) {
	f.gotWindow = windowDays
	if f.err != nil {
		return nil, f.err
	}
	return f.sales, nil
}

type fakeCompanyRepo struct {
	company *entity.Company
}

func (f *fakeCompanyRepo) Create(_ context.Context, _ *entity.Company) error { return nil }
func (f *fakeCompanyRepo) GetByID(_ context.Context, _ int64) (*entity.Company, error) {
	return f.company, nil
}
func (f *fakeCompanyRepo) List(_ context.Context, _, _ int) ([]*entity.Company, error) {
	return nil, nil
}

// fakeCache cache en memoria sin TTL (suficiente para los tests).
type fakeCache struct {
	data map[string]*dto.LowStockAlertsResponse
	getErr, setErr error
}

func cacheKey(companyID int64, windowDays int) string {
	return fmt.Sprintf("%d:%d", companyID, windowDays)
}

func (f *fakeCache) Get(_ context.Context, companyID int64, windowDays int) (*dto.LowStockAlertsResponse, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.data[cacheKey(companyID, windowDays)], nil
}

func (f *fakeCache) Set(_ context.Context, companyID int64, windowDays int, resp *dto.LowStockAlertsResponse) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.data == nil {
		f.data = map[string]*dto.LowStockAlertsResponse{}
	}
	f.data[cacheKey(companyID, windowDays)] = resp
	return nil
}

func understockedRow(inventoryID int64, stock, threshold int) repository.UnderstockedRow {
	return repository.UnderstockedRow{
		InventoryID:   inventoryID,
		ProductID:     inventoryID * 10,
		ProductName:   "Producto",
		SKU:           "SKU-TEST",
		WarehouseID:   1,
		WarehouseName: "Bodega Central",
		CurrentStock:  stock,
		Threshold:     threshold,
		SupplierID:    5,
		SupplierName:  "Proveedor SA",
		SupplierEmail: "compras@proveedor.co",
	}
}

func buildAlertsUC(alertRepo *fakeAlertRepo, changeRepo *fakeChangeRepo, cache alerts.AlertCache) *alerts.LowStockUseCase {
	return alerts.NewLowStockUseCase(
		alertRepo, changeRepo, &fakeCompanyRepo{company: &entity.Company{ID: 1, Name: "Acme"}},
		cache, nil, 30, logger.Nop(),
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// stock=5, umbral=10, una venta de 3 unidades en 30 días:
// avg = 3/30 = 0.1 y days_until_stockout = ceil(5/0.1) = 50.
func TestGetLowStockAlerts_InclusionConVelocidadDeVentas(t *testing.T) {
	alertRepo := &fakeAlertRepo{rows: []repository.UnderstockedRow{understockedRow(1, 5, 10)}}
	changeRepo := &fakeChangeRepo{sales: map[int64]decimal.Decimal{
		1: decimal.NewFromInt(3).Div(decimal.NewFromInt(30)),
	}}
	uc := buildAlertsUC(alertRepo, changeRepo, nil)

	out, err := uc.GetLowStockAlerts(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Equal(t, 1, out.TotalAlerts)

	alert := out.Alerts[0]
	assert.Equal(t, 5, alert.CurrentStock)
	assert.Equal(t, 10, alert.Threshold)
	assert.True(t, alert.AvgDailySales.Equal(decimal.RequireFromString("0.1")))
	require.NotNil(t, alert.DaysUntilStockout)
	assert.Equal(t, int64(50), *alert.DaysUntilStockout)
	assert.Equal(t, "Proveedor SA", alert.Supplier.Name)
}

// Bajo umbral pero sin ventas en la ventana: no es alerta.
func TestGetLowStockAlerts_ExclusionSinVentasRecientes(t *testing.T) {
	alertRepo := &fakeAlertRepo{rows: []repository.UnderstockedRow{understockedRow(1, 2, 10)}}
	changeRepo := &fakeChangeRepo{sales: map[int64]decimal.Decimal{}} // ninguna venta
	uc := buildAlertsUC(alertRepo, changeRepo, nil)

	out, err := uc.GetLowStockAlerts(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Zero(t, out.TotalAlerts)
	assert.Empty(t, out.Alerts)
}

// Mezcla: solo las filas con ventas positivas generan alerta.
func TestGetLowStockAlerts_FiltraPorFila(t *testing.T) {
	alertRepo := &fakeAlertRepo{rows: []repository.UnderstockedRow{
		understockedRow(1, 5, 10),
		understockedRow(2, 3, 10),
		understockedRow(3, 1, 10),
	}}
	changeRepo := &fakeChangeRepo{sales: map[int64]decimal.Decimal{
		1: decimal.RequireFromString("0.5"),
		3: decimal.Zero, // presente pero cero: tampoco alerta
	}}
	uc := buildAlertsUC(alertRepo, changeRepo, nil)

	out, err := uc.GetLowStockAlerts(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Equal(t, 1, out.TotalAlerts)
	assert.Equal(t, int64(10), out.Alerts[0].ProductID)
}

// Fila con umbral faltante (fallback 1): se alerta igual pero queda marcada.
func TestGetLowStockAlerts_UmbralFaltanteMarcado(t *testing.T) {
	row := understockedRow(1, 0, 1)
	row.ThresholdMissing = true
	alertRepo := &fakeAlertRepo{rows: []repository.UnderstockedRow{row}}
	changeRepo := &fakeChangeRepo{sales: map[int64]decimal.Decimal{
		1: decimal.RequireFromString("0.2"),
	}}
	uc := buildAlertsUC(alertRepo, changeRepo, nil)

	out, err := uc.GetLowStockAlerts(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Equal(t, 1, out.TotalAlerts)
	assert.True(t, out.Alerts[0].ThresholdMissing)
	assert.Equal(t, 1, out.Alerts[0].Threshold)
}

// La lectura es idempotente: dos llamadas con el mismo estado dan lo mismo.
func TestGetLowStockAlerts_LecturaIdempotente(t *testing.T) {
	alertRepo := &fakeAlertRepo{rows: []repository.UnderstockedRow{understockedRow(1, 5, 10)}}
	changeRepo := &fakeChangeRepo{sales: map[int64]decimal.Decimal{
		1: decimal.RequireFromString("0.1"),
	}}
	uc := buildAlertsUC(alertRepo, changeRepo, nil)

	first, err := uc.GetLowStockAlerts(context.Background(), 1, 0)
	require.NoError(t, err)
	second, err := uc.GetLowStockAlerts(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// Sin filas bajo umbral no se consulta el agregador y la respuesta es vacía
// (lista vacía, no null).
func TestGetLowStockAlerts_SinFilasBajoUmbral(t *testing.T) {
	alertRepo := &fakeAlertRepo{}
	changeRepo := &fakeChangeRepo{}
	uc := buildAlertsUC(alertRepo, changeRepo, nil)

	out, err := uc.GetLowStockAlerts(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.NotNil(t, out.Alerts)
	assert.Empty(t, out.Alerts)
	assert.Zero(t, changeRepo.gotWindow, "sin filas no debe llamarse el agregador")
}

// windowDays <= 0 usa la ventana configurada (30).
func TestGetLowStockAlerts_VentanaPorDefecto(t *testing.T) {
	alertRepo := &fakeAlertRepo{rows: []repository.UnderstockedRow{understockedRow(1, 5, 10)}}
	changeRepo := &fakeChangeRepo{sales: map[int64]decimal.Decimal{}}
	uc := buildAlertsUC(alertRepo, changeRepo, nil)

	_, err := uc.GetLowStockAlerts(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, changeRepo.gotWindow)

	_, err = uc.GetLowStockAlerts(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, changeRepo.gotWindow)
}

// Cache hit: la segunda lectura no vuelve a consultar el repositorio.
func TestGetLowStockAlerts_CacheHit(t *testing.T) {
	alertRepo := &fakeAlertRepo{rows: []repository.UnderstockedRow{understockedRow(1, 5, 10)}}
	changeRepo := &fakeChangeRepo{sales: map[int64]decimal.Decimal{
		1: decimal.RequireFromString("0.1"),
	}}
	cache := &fakeCache{}
	uc := buildAlertsUC(alertRepo, changeRepo, cache)

	first, err := uc.GetLowStockAlerts(context.Background(), 1, 0)
	require.NoError(t, err)
	second, err := uc.GetLowStockAlerts(context.Background(), 1, 0)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, alertRepo.calls, "la segunda lectura debe servirse del cache")
}

// Un cache roto nunca tumba la lectura: se degrada a consulta directa.
func TestGetLowStockAlerts_CacheCaidoNoEsFatal(t *testing.T) {
	alertRepo := &fakeAlertRepo{rows: []repository.UnderstockedRow{understockedRow(1, 5, 10)}}
	changeRepo := &fakeChangeRepo{sales: map[int64]decimal.Decimal{
		1: decimal.RequireFromString("0.1"),
	}}
	cache := &fakeCache{getErr: errors.New("redis caído"), setErr: errors.New("redis caído")}
	uc := buildAlertsUC(alertRepo, changeRepo, cache)

	out, err := uc.GetLowStockAlerts(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalAlerts)
}

// El error del repositorio se propaga sin efectos secundarios.
func TestGetLowStockAlerts_ErrorDeRepositorio(t *testing.T) {
	alertRepo := &fakeAlertRepo{err: errors.New("tabla inaccesible")}
	uc := buildAlertsUC(alertRepo, &fakeChangeRepo{}, nil)

	_, err := uc.GetLowStockAlerts(context.Background(), 1, 0)
	assert.Error(t, err)
}
