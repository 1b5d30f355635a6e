package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/invorya/inventory-api/internal/application/dto"
	"github.com/invorya/inventory-api/internal/domain"
	"github.com/invorya/inventory-api/internal/domain/entity"
	"github.com/invorya/inventory-api/internal/domain/repository"
)

// RegisterChangeUseCase registra movimientos de stock (sale, restock,
// adjustment) de forma transaccional: bloquea la fila de inventario
// (SELECT FOR UPDATE), valida que el stock no quede negativo, actualiza la
// cantidad y agrega la entrada inmutable al ledger. Commit o Rollback, nunca
// estados intermedios.
type RegisterChangeUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
}

// NewRegisterChangeUseCase construye el caso de uso.
func NewRegisterChangeUseCase(txRunner TxRunner, warehouseRepo repository.WarehouseRepository) *RegisterChangeUseCase {
	return &RegisterChangeUseCase{txRunner: txRunner, warehouseRepo: warehouseRepo}
}

// RegisterChange valida y aplica el movimiento sobre la fila (producto, bodega)
// de la empresa. Para sale/restock Quantity son unidades (> 0); para
// adjustment, Quantity es el delta con signo.
func (uc *RegisterChangeUseCase) RegisterChange(ctx context.Context, companyID int64, userID string, in dto.RegisterChangeRequest) (*dto.RegisterChangeResponse, error) {
	if in.ProductID <= 0 || in.WarehouseID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidChangeType(in.ChangeType) {
		return nil, domain.ErrInvalidInput
	}
	var delta int
	switch in.ChangeType {
	case entity.ChangeTypeSale:
		if in.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		delta = -in.Quantity
	case entity.ChangeTypeRestock:
		if in.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		delta = in.Quantity
	case entity.ChangeTypeAdjustment:
		if in.Quantity == 0 {
			return nil, domain.ErrInvalidInput
		}
		delta = in.Quantity
	}

	// La bodega debe existir y pertenecer a la empresa del token.
	warehouse, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if warehouse.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	txID := uuid.New().String()
	var newQty int

	err = uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
		changeRepo repository.InventoryChangeRepository,
	) error {
		// Bloquea la fila para evitar carreras entre movimientos concurrentes.
		inv, err := inventoryRepo.GetForUpdate(ctx, in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		newQty = inv.Quantity + delta
		if newQty < 0 {
			return domain.ErrInsufficientStock
		}
		if err := inventoryRepo.UpdateQuantity(ctx, inv.ID, newQty); err != nil {
			return err
		}
		return changeRepo.Create(ctx, &entity.InventoryChange{
			InventoryID:   inv.ID,
			TransactionID: txID,
			ChangeType:    in.ChangeType,
			QuantityDelta: delta,
			OccurredAt:    now,
			CreatedAt:     now,
			CreatedBy:     userID,
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegisterChangeResponse{
		Message:       "movimiento registrado",
		TransactionID: txID,
		NewQuantity:   newQty,
	}, nil
}
