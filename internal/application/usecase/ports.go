package usecase

import (
	"context"

	"github.com/jhoicas/micro-erp/internal/application/inventory"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

// StockApplier aplica un movimiento con los repositorios de la transacción en curso.
type StockApplier interface {
	ApplyInTx(
		ctx context.Context,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		actorID *int64,
		in inventory.StockChange,
	) (*inventory.StockResult, error)
}
