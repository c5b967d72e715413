package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productColumns = []string{
	"p.id", "p.codigo", "p.nome", "p.descricao", "p.categoria_id", "p.preco_custo", "p.preco_venda",
	"p.comissao_percentual", "p.estoque_atual", "p.estoque_minimo", "p.unidade_medida", "p.ativo",
	"p.created_at", "p.updated_at", "cat.nome AS categoria_nome",
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func productSelect() squirrel.SelectBuilder {
	return psql.Select(productColumns...).
		From("produtos p").
		LeftJoin("categorias_produtos cat ON cat.id = p.categoria_id")
}

// productListQuery arma el SELECT del listado según los filtros.
func productListQuery(f repository.ProductFilter) squirrel.SelectBuilder {
	qb := productSelect().OrderBy("p.nome")
	if f.Active != nil {
		qb = qb.Where(squirrel.Eq{"p.ativo": *f.Active})
	}
	if f.CategoryID != nil {
		qb = qb.Where(squirrel.Eq{"p.categoria_id": *f.CategoryID})
	}
	if f.LowStock {
		qb = qb.Where("p.estoque_atual <= p.estoque_minimo")
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		qb = qb.Where(squirrel.Or{
			squirrel.ILike{"p.nome": pattern},
			squirrel.ILike{"p.codigo": pattern},
		})
	}
	return qb
}

// List lista productos ordenados por nome.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]entity.Product, error) {
	query, args, err := productListQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list produtos: %w", err)
	}
	list := []entity.Product{}
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list produtos: %w", err)
	}
	return list, nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query, args, err := productSelect().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get produto: %w", err)
	}
	return getOne("get produto", func(dst *entity.Product) error {
		return pgxscan.Get(ctx, r.q, dst, query, args...)
	})
}

// GetForUpdate obtiene el producto bloqueando su fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	query, args, err := productSelect().Where(squirrel.Eq{"p.id": id}).Suffix("FOR UPDATE OF p").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get produto for update: %w", err)
	}
	return getOne("get produto for update", func(dst *entity.Product) error {
		return pgxscan.Get(ctx, r.q, dst, query, args...)
	})
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO produtos (
			codigo, nome, descricao, categoria_id, preco_custo, preco_venda, comissao_percentual,
			estoque_atual, estoque_minimo, unidade_medida, ativo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		p.Code, p.Name, p.Description, p.CategoryID, p.CostPrice, p.SalePrice, p.CommissionPercent,
		p.StockCurrent, p.StockMinimum, p.Unit, p.Active,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapWriteError("insert produto", err)
	}
	return nil
}

// Update actualiza un producto existente. No modifica estoque_atual (se maneja vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE produtos SET codigo = $2, nome = $3, descricao = $4, categoria_id = $5, preco_custo = $6,
			preco_venda = $7, comissao_percentual = $8, estoque_minimo = $9, unidade_medida = $10,
			ativo = $11, updated_at = now()
		WHERE id = $1`,
		p.ID, p.Code, p.Name, p.Description, p.CategoryID, p.CostPrice,
		p.SalePrice, p.CommissionPercent, p.StockMinimum, p.Unit, p.Active,
	)
	if err != nil {
		return mapWriteError("update produto", err)
	}
	return rowsAffected(tag.RowsAffected(), "Produto não encontrado")
}

// SetStock fija estoque_atual (usado por el motor de estoque).
func (r *ProductRepo) SetStock(ctx context.Context, id int64, stock int) error {
	tag, err := r.q.Exec(ctx, `UPDATE produtos SET estoque_atual = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return mapWriteError("update estoque", err)
	}
	return rowsAffected(tag.RowsAffected(), "Produto não encontrado")
}

func (r *ProductRepo) SetCostPrice(ctx context.Context, id int64, cost decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE produtos SET preco_custo = $2, updated_at = now() WHERE id = $1`, id, cost)
	if err != nil {
		return mapWriteError("update preco_custo", err)
	}
	return rowsAffected(tag.RowsAffected(), "Produto não encontrado")
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM produtos WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete produto", err)
	}
	return rowsAffected(tag.RowsAffected(), "Produto não encontrado")
}

// Deactivate marca ativo = false.
func (r *ProductRepo) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE produtos SET ativo = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("inativar produto: %w", err)
	}
	return rowsAffected(tag.RowsAffected(), "Produto não encontrado")
}

// CountSaleItems cuenta items de venta que referencian el producto.
func (r *ProductRepo) CountSaleItems(ctx context.Context, id int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM itens_venda WHERE produto_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count itens do produto: %w", err)
	}
	return n, nil
}

// MaxGeneratedCode mayor sufijo numérico entre los códigos con forma P<dígitos>.
func (r *ProductRepo) MaxGeneratedCode(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(SUBSTRING(codigo FROM 2)::INTEGER), 0)
		FROM produtos WHERE codigo ~ '^P[0-9]{1,9}$'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("max codigo produto: %w", err)
	}
	return n, nil
}
