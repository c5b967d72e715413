package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

var saleColumns = []string{
	"v.id", "v.numero_venda", "v.cliente_id", "v.vendedor_id", "v.protocolo_instalacao", "v.data_venda",
	"v.data_instalacao", "v.subtotal", "v.desconto", "v.acrescimo", "v.valor_total", "v.forma_pagamento",
	"v.parcelas", "v.status_venda", "v.status_pagamento", "v.observacoes", "v.observacoes_internas",
	"v.created_at", "v.updated_at",
	"TRIM(CASE WHEN cl.tipo_pessoa = 'fisica' THEN cl.nome || ' ' || COALESCE(cl.sobrenome, '') ELSE cl.razao_social END) AS cliente_nome",
	"(col.nome || ' ' || col.sobrenome) AS vendedor_nome",
}

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func saleSelect() squirrel.SelectBuilder {
	return psql.Select(saleColumns...).
		From("vendas v").
		Join("clientes cl ON cl.id = v.cliente_id").
		Join("colaboradores col ON col.id = v.vendedor_id")
}

// saleListQuery arma el SELECT del listado según los filtros, más recientes primero.
func saleListQuery(f repository.SaleFilter) squirrel.SelectBuilder {
	qb := saleSelect().OrderBy("v.data_venda DESC", "v.id DESC")
	if f.From != nil {
		qb = qb.Where(squirrel.GtOrEq{"v.data_venda": *f.From})
	}
	if f.To != nil {
		qb = qb.Where(squirrel.Lt{"v.data_venda": *f.To})
	}
	if f.SalespersonID != nil {
		qb = qb.Where(squirrel.Eq{"v.vendedor_id": *f.SalespersonID})
	}
	if f.CustomerID != nil {
		qb = qb.Where(squirrel.Eq{"v.cliente_id": *f.CustomerID})
	}
	if f.Status != "" {
		qb = qb.Where(squirrel.Eq{"v.status_venda": f.Status})
	}
	return qb
}

func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]entity.Sale, error) {
	query, args, err := saleListQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list vendas: %w", err)
	}
	list := []entity.Sale{}
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list vendas: %w", err)
	}
	return list, nil
}

// GetByID cabecera de la venta; (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	query, args, err := saleSelect().Where(squirrel.Eq{"v.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get venda: %w", err)
	}
	return getOne("get venda", func(dst *entity.Sale) error {
		return pgxscan.Get(ctx, r.q, dst, query, args...)
	})
}

// saleForUpdateQuery bloquea solo la fila de vendas, no las de clientes ni colaboradores.
func saleForUpdateQuery(id int64) squirrel.SelectBuilder {
	return saleSelect().Where(squirrel.Eq{"v.id": id}).Suffix("FOR UPDATE OF v")
}

// GetForUpdate cabecera de la venta con la fila bloqueada hasta el fin de la transacción.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error) {
	query, args, err := saleForUpdateQuery(id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get venda for update: %w", err)
	}
	return getOne("get venda for update", func(dst *entity.Sale) error {
		return pgxscan.Get(ctx, r.q, dst, query, args...)
	})
}

// Create inserta la cabecera. numero_venda sale de la secuencia vendas_numero_seq.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO vendas (
			cliente_id, vendedor_id, protocolo_instalacao, data_venda, data_instalacao,
			subtotal, desconto, acrescimo, valor_total, forma_pagamento, parcelas,
			status_venda, status_pagamento, observacoes, observacoes_internas
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, numero_venda, created_at, updated_at`,
		s.CustomerID, s.SalespersonID, s.InstallationProtocol, s.SaleDate, s.InstallationDate,
		s.Subtotal, s.Discount, s.Surcharge, s.Total, s.PaymentMethod, s.Installments,
		s.Status, s.PaymentStatus, s.Notes, s.InternalNotes,
	).Scan(&s.ID, &s.Number, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return mapWriteError("insert venda", err)
	}
	return nil
}

// CreateItem inserta una línea de la venta y completa su ID.
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO itens_venda (
			venda_id, produto_id, quantidade, preco_unitario, desconto_item, subtotal, comissao_percentual, comissao_valor
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		it.SaleID, it.ProductID, it.Quantity, it.UnitPrice, it.ItemDiscount, it.Subtotal,
		it.CommissionPercent, it.CommissionValue,
	).Scan(&it.ID)
	if err != nil {
		return mapWriteError("insert item venda", err)
	}
	return nil
}

// ListItems items de la venta con código y nome del producto.
func (r *SaleRepo) ListItems(ctx context.Context, saleID int64) ([]entity.SaleItem, error) {
	items := []entity.SaleItem{}
	err := pgxscan.Select(ctx, r.q, &items, `
		SELECT i.id, i.venda_id, i.produto_id, i.quantidade, i.preco_unitario, i.desconto_item, i.subtotal,
			i.comissao_percentual, i.comissao_valor, p.codigo AS produto_codigo, p.nome AS produto_nome
		FROM itens_venda i
		JOIN produtos p ON p.id = i.produto_id
		WHERE i.venda_id = $1
		ORDER BY i.id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list itens venda: %w", err)
	}
	return items, nil
}

func (r *SaleRepo) UpdateStatus(ctx context.Context, id int64, status entity.SaleStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE vendas SET status_venda = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return mapWriteError("update status venda", err)
	}
	return rowsAffected(tag.RowsAffected(), "Venda não encontrada")
}
