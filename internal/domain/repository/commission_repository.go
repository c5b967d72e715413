package repository

import (
	"context"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
)

// CommissionRepository define el puerto de persistencia para comisiones.
type CommissionRepository interface {
	Create(ctx context.Context, c *entity.Commission) error
	// ListPending devuelve las comisiones pendientes con numero_venda, data_venda y colaborador_nome.
	ListPending(ctx context.Context, employeeID *int64) ([]entity.Commission, error)
	// MarkPaid pasa una comisión pendiente a pago; ErrNotFound si no existe o no está pendiente.
	MarkPaid(ctx context.Context, id int64) error
	// CancelBySale cancela las comisiones pendientes de la venta.
	CancelBySale(ctx context.Context, saleID int64) error
}
