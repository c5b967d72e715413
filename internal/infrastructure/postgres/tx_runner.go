package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/micro-erp/internal/application/inventory"
	"github.com/jhoicas/micro-erp/internal/application/sales"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and sales.SalesTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.SalesTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// within abre la transacción, ejecuta fn y hace Commit; cualquier error (o panic) termina en Rollback.
func (r *TxRunner) within(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run ejecuta fn con los repos de estoque atados a la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx), NewInventoryMovementRepository(tx))
	})
}

// RunSale inicia una transacción con repos de ventas, comisiones y estoque (para CreateSale y cambios de estado).
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	commissionRepo repository.CommissionRepository,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(
			NewSaleRepository(tx),
			NewCommissionRepository(tx),
			NewProductRepository(tx),
			NewInventoryMovementRepository(tx),
		)
	})
}
