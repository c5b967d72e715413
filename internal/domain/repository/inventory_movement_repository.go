package repository

import (
	"context"
	"time"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
)

// MovementFilter filtros del histórico de movimientos de estoque.
type MovementFilter struct {
	ProductID *int64
	SaleID    *int64
	From      *time.Time
	To        *time.Time
	Limit     uint64
}

// InventoryMovementRepository define el puerto de persistencia para movimientos de estoque.
type InventoryMovementRepository interface {
	Create(ctx context.Context, m *entity.InventoryMovement) error
	List(ctx context.Context, f MovementFilter) ([]entity.InventoryMovement, error)
}
