package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invorya/inventory-api/internal/application/catalog"
	"github.com/invorya/inventory-api/internal/application/inventory"
	"github.com/invorya/inventory-api/internal/domain/repository"
)

// Ensure TxRunner implements catalog.TxRunner and inventory.TxRunner.
var _ catalog.TxRunner = (*TxRunner)(nil)
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Hay un único punto de commit; el Rollback diferido cubre
// todos los caminos de error (el Rollback tras un Commit exitoso es no-op).
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	changeRepo repository.InventoryChangeRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	inventoryRepo := NewInventoryRepository(tx)
	changeRepo := NewInventoryChangeRepository(tx)

	if err := fn(productRepo, inventoryRepo, changeRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		// El commit también puede reportar la violación de un constraint
		// diferido; se traduce igual que en los inserts.
		if derr := translateConstraint(err); derr != nil {
			return derr
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
