package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/inventory-api/internal/application/dto"
	"github.com/invorya/inventory-api/internal/application/inventory"
	"github.com/invorya/inventory-api/internal/domain"
	"github.com/invorya/inventory-api/internal/domain/entity"
	"github.com/invorya/inventory-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeWarehouseRepo struct {
	byID map[int64]*entity.Warehouse
}

func (f *fakeWarehouseRepo) Create(_ context.Context, _ *entity.Warehouse) error { return nil }
func (f *fakeWarehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	return f.byID[id], nil
}
func (f *fakeWarehouseRepo) ListByCompany(_ context.Context, _ int64, _, _ int) ([]*entity.Warehouse, error) {
	return nil, nil
}

type fakeInventoryRepo struct {
	row *entity.Inventory // la fila (producto, bodega) bajo prueba
}

func (f *fakeInventoryRepo) CreateBatch(_ context.Context, _ []*entity.Inventory) error { return nil }
func (f *fakeInventoryRepo) GetByProductAndWarehouse(_ context.Context, _, _ int64) (*entity.Inventory, error) {
	return f.row, nil
}
func (f *fakeInventoryRepo) GetForUpdate(_ context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	if f.row != nil && f.row.ProductID == productID && f.row.WarehouseID == warehouseID {
		return f.row, nil
	}
	return nil, nil
}
func (f *fakeInventoryRepo) UpdateQuantity(_ context.Context, inventoryID int64, quantity int) error {
	if f.row != nil && f.row.ID == inventoryID {
		f.row.Quantity = quantity
	}
	return nil
}
func (f *fakeInventoryRepo) ListByProduct(_ context.Context, _ int64) ([]*entity.Inventory, error) {
	return nil, nil
}

type fakeChangeRepo struct {
	entries []*entity.InventoryChange
}

func (f *fakeChangeRepo) Create(_ context.Context, change *entity.InventoryChange) error {
	f.entries = append(f.entries, change)
	return nil
}
func (f *fakeChangeRepo) AvgDailySales(_ context.Context, _ []int64, _ int) (map[int64]decimal.Decimal, error) {
	return nil, nil
}

type fakeTxRunner struct {
	inventoryRepo *fakeInventoryRepo
	changeRepo    repository.InventoryChangeRepository
	rolledBack    bool
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	repository.ProductRepository,
	repository.InventoryRepository,
	repository.InventoryChangeRepository,
) error) error {
	var qtySnapshot int
	if f.inventoryRepo.row != nil {
		qtySnapshot = f.inventoryRepo.row.Quantity
	}
	if err := fn(nil, f.inventoryRepo, f.changeRepo); err != nil {
		if f.inventoryRepo.row != nil {
			f.inventoryRepo.row.Quantity = qtySnapshot
		}
		f.rolledBack = true
		return err
	}
	return nil
}

func buildChangeUC(stock int) (*inventory.RegisterChangeUseCase, *fakeInventoryRepo, *fakeChangeRepo, *fakeTxRunner) {
	warehouseRepo := &fakeWarehouseRepo{byID: map[int64]*entity.Warehouse{
		1: {ID: 1, CompanyID: 42, Name: "Bodega Central"},
		2: {ID: 2, CompanyID: 99, Name: "Bodega Ajena"},
	}}
	inventoryRepo := &fakeInventoryRepo{row: &entity.Inventory{
		ID: 10, ProductID: 7, WarehouseID: 1, Quantity: stock,
	}}
	changeRepo := &fakeChangeRepo{}
	txRunner := &fakeTxRunner{inventoryRepo: inventoryRepo, changeRepo: changeRepo}
	uc := inventory.NewRegisterChangeUseCase(txRunner, warehouseRepo)
	return uc, inventoryRepo, changeRepo, txRunner
}

func changeReq(changeType string, qty int) dto.RegisterChangeRequest {
	return dto.RegisterChangeRequest{
		ProductID:   7,
		WarehouseID: 1,
		ChangeType:  changeType,
		Quantity:    qty,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterChange_VentaDescuentaStock(t *testing.T) {
	uc, inventoryRepo, changeRepo, _ := buildChangeUC(10)

	out, err := uc.RegisterChange(context.Background(), 42, "user-1", changeReq("sale", 3))
	require.NoError(t, err)

	assert.Equal(t, 7, out.NewQuantity)
	assert.Equal(t, 7, inventoryRepo.row.Quantity)
	assert.NotEmpty(t, out.TransactionID)
	require.Len(t, changeRepo.entries, 1)
	assert.Equal(t, -3, changeRepo.entries[0].QuantityDelta,
		"la venta debe registrarse como delta negativo")
	assert.Equal(t, "sale", changeRepo.entries[0].ChangeType)
}

func TestRegisterChange_RestockSumaStock(t *testing.T) {
	uc, inventoryRepo, changeRepo, _ := buildChangeUC(2)

	out, err := uc.RegisterChange(context.Background(), 42, "user-1", changeReq("restock", 50))
	require.NoError(t, err)

	assert.Equal(t, 52, out.NewQuantity)
	assert.Equal(t, 52, inventoryRepo.row.Quantity)
	require.Len(t, changeRepo.entries, 1)
	assert.Equal(t, 50, changeRepo.entries[0].QuantityDelta)
}

func TestRegisterChange_AjusteConSigno(t *testing.T) {
	uc, inventoryRepo, _, _ := buildChangeUC(10)

	out, err := uc.RegisterChange(context.Background(), 42, "user-1", changeReq("adjustment", -4))
	require.NoError(t, err)
	assert.Equal(t, 6, out.NewQuantity)
	assert.Equal(t, 6, inventoryRepo.row.Quantity)
}

// La venta que dejaría stock negativo se rechaza y nada cambia.
func TestRegisterChange_StockInsuficiente(t *testing.T) {
	uc, inventoryRepo, changeRepo, txRunner := buildChangeUC(2)

	_, err := uc.RegisterChange(context.Background(), 42, "user-1", changeReq("sale", 5))

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, txRunner.rolledBack)
	assert.Equal(t, 2, inventoryRepo.row.Quantity, "el stock no debe cambiar")
	assert.Empty(t, changeRepo.entries, "no debe quedar entrada en el ledger")
}

func TestRegisterChange_TipoInvalido(t *testing.T) {
	uc, _, _, _ := buildChangeUC(10)

	_, err := uc.RegisterChange(context.Background(), 42, "user-1", changeReq("transfer", 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterChange_CantidadInvalida(t *testing.T) {
	uc, _, _, _ := buildChangeUC(10)

	casos := []dto.RegisterChangeRequest{
		changeReq("sale", 0),
		changeReq("sale", -1),
		changeReq("restock", 0),
		changeReq("adjustment", 0),
	}
	for _, req := range casos {
		_, err := uc.RegisterChange(context.Background(), 42, "user-1", req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo=%s qty=%d", req.ChangeType, req.Quantity)
	}
}

func TestRegisterChange_BodegaDeOtraEmpresa(t *testing.T) {
	uc, _, _, _ := buildChangeUC(10)

	req := changeReq("sale", 1)
	req.WarehouseID = 2 // pertenece a la empresa 99

	_, err := uc.RegisterChange(context.Background(), 42, "user-1", req)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegisterChange_BodegaInexistente(t *testing.T) {
	uc, _, _, _ := buildChangeUC(10)

	req := changeReq("sale", 1)
	req.WarehouseID = 777

	_, err := uc.RegisterChange(context.Background(), 42, "user-1", req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterChange_FilaDeInventarioInexistente(t *testing.T) {
	uc, inventoryRepo, _, _ := buildChangeUC(10)
	inventoryRepo.row = nil

	_, err := uc.RegisterChange(context.Background(), 42, "user-1", changeReq("sale", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
