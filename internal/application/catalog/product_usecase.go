package catalog

import (
	"context"
	"time"

	"github.com/invorya/inventory-api/internal/application/dto"
	"github.com/invorya/inventory-api/internal/domain"
	"github.com/invorya/inventory-api/internal/domain/entity"
	"github.com/invorya/inventory-api/internal/domain/repository"
)

// ProductUseCase casos de uso de catálogo. Create es el writer transaccional:
// crea el producto junto con su inventario inicial en N bodegas como una sola
// unidad atómica.
type ProductUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

// Create valida la petición y crea el producto con sus filas de inventario en
// una sola transacción. O se persiste todo, o no se persiste nada: un fallo
// en cualquier inserción revierte la transacción completa.
//
// El pre-chequeo de SKU es solo una optimización de UX (error temprano y más
// amable): la garantía real de unicidad es el constraint único de la base,
// cuya violación dentro de la tx también se traduce a ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	input, err := req.Validate()
	if err != nil {
		return nil, err
	}

	// Pre-chequeo advisory: dos creaciones concurrentes del mismo SKU pueden
	// pasar ambas por aquí; el constraint decide.
	if existing, _ := uc.productRepo.GetBySKU(ctx, input.SKU); existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		SKU:               input.SKU,
		Name:              input.Name,
		Price:             input.Price,
		LowStockThreshold: input.LowStockThreshold,
		SupplierID:        input.SupplierID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
		_ repository.InventoryChangeRepository,
	) error {
		// Inserta el producto y obtiene su ID generado sin cerrar la tx.
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		rows := make([]*entity.Inventory, 0, len(input.Warehouses))
		for _, wq := range input.Warehouses {
			rows = append(rows, &entity.Inventory{
				ProductID:   product.ID,
				WarehouseID: wq.WarehouseID,
				Quantity:    wq.Quantity,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}
		return inventoryRepo.CreateBatch(ctx, rows)
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateProductResponse{
		Message:   "Product created",
		ProductID: product.ID,
	}, nil
}

// GetByID obtiene un producto con su stock por bodega.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	levels, err := uc.inventoryRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	for _, lvl := range levels {
		resp.Stock = append(resp.Stock, dto.ProductStockDTO{
			WarehouseID: lvl.WarehouseID,
			Quantity:    lvl.Quantity,
		})
	}
	return resp, nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.productRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name,
		Price:             p.Price,
		LowStockThreshold: p.LowStockThreshold,
		SupplierID:        p.SupplierID,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
