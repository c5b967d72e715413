package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const defaultMovementLimit = 200

// InventoryMovementRepo implementación del puerto InventoryMovementRepository (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador de persistencia para movimientos.
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento y completa ID y created_at.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO movimentacao_estoque (
			produto_id, tipo_movimentacao, quantidade, estoque_anterior, estoque_atual, venda_id, colaborador_id, motivo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		m.ProductID, m.Direction, m.Quantity, m.StockBefore, m.StockAfter, m.SaleID, m.EmployeeID, m.Reason,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return mapWriteError("insert movimentacao", err)
	}
	return nil
}

// movementListQuery arma el SELECT del histórico, más recientes primero.
func movementListQuery(f repository.MovementFilter) squirrel.SelectBuilder {
	limit := f.Limit
	if limit == 0 {
		limit = defaultMovementLimit
	}
	qb := psql.Select(
		"m.id", "m.produto_id", "m.tipo_movimentacao", "m.quantidade", "m.estoque_anterior", "m.estoque_atual",
		"m.venda_id", "m.colaborador_id", "m.motivo", "m.created_at",
		"p.nome AS produto_nome", "(c.nome || ' ' || c.sobrenome) AS colaborador_nome",
	).
		From("movimentacao_estoque m").
		Join("produtos p ON p.id = m.produto_id").
		LeftJoin("colaboradores c ON c.id = m.colaborador_id").
		OrderBy("m.created_at DESC", "m.id DESC").
		Limit(limit)
	if f.ProductID != nil {
		qb = qb.Where(squirrel.Eq{"m.produto_id": *f.ProductID})
	}
	if f.SaleID != nil {
		qb = qb.Where(squirrel.Eq{"m.venda_id": *f.SaleID})
	}
	if f.From != nil {
		qb = qb.Where(squirrel.GtOrEq{"m.created_at": *f.From})
	}
	if f.To != nil {
		qb = qb.Where(squirrel.Lt{"m.created_at": *f.To})
	}
	return qb
}

// List histórico de movimientos filtrado.
func (r *InventoryMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]entity.InventoryMovement, error) {
	query, args, err := movementListQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list movimentacoes: %w", err)
	}
	list := []entity.InventoryMovement{}
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list movimentacoes: %w", err)
	}
	return list, nil
}
