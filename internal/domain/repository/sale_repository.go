package repository

import (
	"context"
	"time"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
)

// SaleFilter filtros del listado de ventas. From es inclusivo y To exclusivo sobre data_venda.
type SaleFilter struct {
	From          *time.Time
	To            *time.Time
	SalespersonID *int64
	CustomerID    *int64
	Status        entity.SaleStatus
}

// SaleRepository define el puerto de persistencia para ventas e items.
type SaleRepository interface {
	List(ctx context.Context, f SaleFilter) ([]entity.Sale, error)
	// GetByID devuelve la cabecera con cliente_nome y vendedor_nome, sin items.
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	// GetForUpdate igual que GetByID pero bloquea la fila de vendas; solo dentro de una transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error)
	// Create inserta la cabecera; completa ID, Number (secuencia de la DB) y timestamps.
	Create(ctx context.Context, s *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	ListItems(ctx context.Context, saleID int64) ([]entity.SaleItem, error)
	UpdateStatus(ctx context.Context, id int64, status entity.SaleStatus) error
}
