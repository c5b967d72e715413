package repository

import (
	"context"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para categorías de productos.
type CategoryRepository interface {
	List(ctx context.Context, onlyActive bool) ([]entity.Category, error)
	Create(ctx context.Context, c *entity.Category) error
}
