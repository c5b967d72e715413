package inventory

import (
	"context"

	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de estoque.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}
