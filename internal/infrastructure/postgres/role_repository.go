package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

const roleColumns = "id, nome, descricao, nivel_acesso, salario_base, comissao_padrao, ativo, created_at, updated_at"

// RoleRepo implementación de RoleRepository sobre PostgreSQL (usable con pool o tx).
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de persistencia para cargos.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// List lista cargos ordenados por nome.
func (r *RoleRepo) List(ctx context.Context, f repository.RoleFilter) ([]entity.Role, error) {
	qb := psql.Select(roleColumns).From("cargos").OrderBy("nome")
	if f.Active != nil {
		qb = qb.Where("ativo = ?", *f.Active)
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list cargos: %w", err)
	}
	roles := []entity.Role{}
	if err := pgxscan.Select(ctx, r.q, &roles, query, args...); err != nil {
		return nil, fmt.Errorf("list cargos: %w", err)
	}
	return roles, nil
}

// GetByID obtiene un cargo; (nil, nil) si no existe.
func (r *RoleRepo) GetByID(ctx context.Context, id int64) (*entity.Role, error) {
	return getOne("get cargo", func(dst *entity.Role) error {
		return pgxscan.Get(ctx, r.q, dst, `SELECT `+roleColumns+` FROM cargos WHERE id = $1`, id)
	})
}

// Create inserta el cargo y completa ID y timestamps.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO cargos (nome, descricao, nivel_acesso, salario_base, comissao_padrao, ativo)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		role.Name, role.Description, role.AccessLevel, role.BaseSalary, role.DefaultCommission, role.Active,
	).Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return mapWriteError("insert cargo", err)
	}
	return nil
}

// Update actualiza los datos del cargo.
func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE cargos SET nome = $2, descricao = $3, nivel_acesso = $4, salario_base = $5,
			comissao_padrao = $6, ativo = $7, updated_at = now()
		WHERE id = $1`,
		role.ID, role.Name, role.Description, role.AccessLevel, role.BaseSalary, role.DefaultCommission, role.Active,
	)
	if err != nil {
		return mapWriteError("update cargo", err)
	}
	return rowsAffected(tag.RowsAffected(), "Cargo não encontrado")
}

// Delete elimina el cargo.
func (r *RoleRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM cargos WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete cargo", err)
	}
	return rowsAffected(tag.RowsAffected(), "Cargo não encontrado")
}

// CountEmployees cuenta colaboradores con el cargo.
func (r *RoleRepo) CountEmployees(ctx context.Context, roleID int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM colaboradores WHERE cargo_id = $1`, roleID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count colaboradores do cargo: %w", err)
	}
	return n, nil
}
