package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías de productos sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) List(ctx context.Context, onlyActive bool) ([]entity.Category, error) {
	qb := psql.Select("id", "nome", "descricao", "ativo", "created_at").From("categorias_produtos").OrderBy("nome")
	if onlyActive {
		qb = qb.Where("ativo")
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list categorias: %w", err)
	}
	list := []entity.Category{}
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	return list, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO categorias_produtos (nome, descricao, ativo) VALUES ($1, $2, $3)
		RETURNING id, created_at`, c.Name, c.Description, c.Active,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return mapWriteError("insert categoria", err)
	}
	return nil
}
