package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

var _ repository.CommissionRepository = (*CommissionRepo)(nil)

// CommissionRepo implementación de CommissionRepository (usable con pool o tx).
type CommissionRepo struct {
	q Querier
}

// NewCommissionRepository construye el adaptador de persistencia para comisiones.
func NewCommissionRepository(q Querier) *CommissionRepo {
	return &CommissionRepo{q: q}
}

func (r *CommissionRepo) Create(ctx context.Context, c *entity.Commission) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO comissoes (
			venda_id, colaborador_id, item_venda_id, valor_venda, percentual_comissao, valor_comissao, status_pagamento
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		c.SaleID, c.EmployeeID, c.SaleItemID, c.SaleValue, c.Percent, c.Value, c.Status,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return mapWriteError("insert comissao", err)
	}
	return nil
}

// pendingCommissionsQuery comisiones pendientes de ventas no canceladas.
func pendingCommissionsQuery(employeeID *int64) squirrel.SelectBuilder {
	qb := psql.Select(
		"cm.id", "cm.venda_id", "cm.colaborador_id", "cm.item_venda_id", "cm.valor_venda",
		"cm.percentual_comissao", "cm.valor_comissao", "cm.status_pagamento", "cm.data_pagamento", "cm.created_at",
		"v.numero_venda", "v.data_venda", "(c.nome || ' ' || c.sobrenome) AS colaborador_nome",
	).
		From("comissoes cm").
		Join("vendas v ON v.id = cm.venda_id").
		Join("colaboradores c ON c.id = cm.colaborador_id").
		Where(squirrel.Eq{"cm.status_pagamento": entity.PaymentPending}).
		Where(squirrel.NotEq{"v.status_venda": entity.SaleCancelled}).
		OrderBy("v.data_venda DESC", "cm.id")
	if employeeID != nil {
		qb = qb.Where(squirrel.Eq{"cm.colaborador_id": *employeeID})
	}
	return qb
}

func (r *CommissionRepo) ListPending(ctx context.Context, employeeID *int64) ([]entity.Commission, error) {
	query, args, err := pendingCommissionsQuery(employeeID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list comissoes: %w", err)
	}
	list := []entity.Commission{}
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list comissoes: %w", err)
	}
	return list, nil
}

func (r *CommissionRepo) MarkPaid(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE comissoes SET status_pagamento = 'pago', data_pagamento = now()
		WHERE id = $1 AND status_pagamento = 'pendente'`, id)
	if err != nil {
		return fmt.Errorf("pagar comissao: %w", err)
	}
	return rowsAffected(tag.RowsAffected(), "Comissão pendente não encontrada")
}

func (r *CommissionRepo) CancelBySale(ctx context.Context, saleID int64) error {
	_, err := r.q.Exec(ctx, `
		UPDATE comissoes SET status_pagamento = 'cancelado'
		WHERE venda_id = $1 AND status_pagamento = 'pendente'`, saleID)
	if err != nil {
		return fmt.Errorf("cancelar comissoes: %w", err)
	}
	return nil
}
