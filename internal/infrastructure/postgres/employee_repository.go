package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

var employeeColumns = []string{
	"c.id", "c.nome", "c.sobrenome", "c.data_nascimento", "c.cpf", "c.rg", "c.telefone", "c.celular", "c.email",
	"c.cep", "c.endereco", "c.numero", "c.complemento", "c.bairro", "c.cidade", "c.estado",
	"c.cargo_id", "c.data_admissao", "c.salario", "c.comissao_personalizada", "c.usuario", "c.senha",
	"c.ativo", "c.bloqueado", "c.bloqueado_em", "c.tentativas_login", "c.ultimo_acesso", "c.created_at", "c.updated_at",
	"car.nome AS cargo_nome", "car.nivel_acesso",
}

// EmployeeRepo implementación de EmployeeRepository sobre PostgreSQL (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de persistencia para colaboradores.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

func employeeSelect() squirrel.SelectBuilder {
	return psql.Select(employeeColumns...).
		From("colaboradores c").
		Join("cargos car ON car.id = c.cargo_id")
}

// employeeListQuery arma el SELECT del listado según los filtros.
func employeeListQuery(f repository.EmployeeFilter) squirrel.SelectBuilder {
	qb := employeeSelect().OrderBy("c.nome", "c.sobrenome")
	if f.Active != nil {
		qb = qb.Where(squirrel.Eq{"c.ativo": *f.Active})
	}
	if f.RoleID != nil {
		qb = qb.Where(squirrel.Eq{"c.cargo_id": *f.RoleID})
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		qb = qb.Where(squirrel.Or{
			squirrel.ILike{"c.nome": pattern},
			squirrel.ILike{"c.sobrenome": pattern},
			squirrel.ILike{"c.usuario": pattern},
			squirrel.ILike{"c.cpf": pattern},
		})
	}
	return qb
}

// List lista colaboradores con su cargo.
func (r *EmployeeRepo) List(ctx context.Context, f repository.EmployeeFilter) ([]entity.Employee, error) {
	query, args, err := employeeListQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list colaboradores: %w", err)
	}
	list := []entity.Employee{}
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list colaboradores: %w", err)
	}
	return list, nil
}

func (r *EmployeeRepo) getBy(ctx context.Context, op string, pred squirrel.Sqlizer) (*entity.Employee, error) {
	query, args, err := employeeSelect().Where(pred).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	return getOne(op, func(dst *entity.Employee) error {
		return pgxscan.Get(ctx, r.q, dst, query, args...)
	})
}

// GetByID obtiene un colaborador; (nil, nil) si no existe.
func (r *EmployeeRepo) GetByID(ctx context.Context, id int64) (*entity.Employee, error) {
	return r.getBy(ctx, "get colaborador", squirrel.Eq{"c.id": id})
}

// GetByUsername busca por usuario sin filtrar por ativo/bloqueado.
func (r *EmployeeRepo) GetByUsername(ctx context.Context, username string) (*entity.Employee, error) {
	return r.getBy(ctx, "get colaborador por usuario", squirrel.Eq{"c.usuario": username})
}

// Create inserta el colaborador y completa ID y timestamps.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO colaboradores (
			nome, sobrenome, data_nascimento, cpf, rg, telefone, celular, email,
			cep, endereco, numero, complemento, bairro, cidade, estado,
			cargo_id, data_admissao, salario, comissao_personalizada, usuario, senha, ativo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id, created_at, updated_at`,
		e.FirstName, e.LastName, e.BirthDate, e.CPF, e.RG, e.Phone, e.Mobile, e.Email,
		e.ZipCode, e.Street, e.Number, e.Complement, e.District, e.City, e.State,
		e.RoleID, e.HireDate, e.Salary, e.CustomCommission, e.Username, e.PasswordHash, e.Active,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return mapWriteError("insert colaborador", err)
	}
	return nil
}

// Update actualiza datos personales, cargo y usuario. No toca senha ni bloqueo.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE colaboradores SET
			nome = $2, sobrenome = $3, data_nascimento = $4, cpf = $5, rg = $6, telefone = $7, celular = $8, email = $9,
			cep = $10, endereco = $11, numero = $12, complemento = $13, bairro = $14, cidade = $15, estado = $16,
			cargo_id = $17, data_admissao = $18, salario = $19, comissao_personalizada = $20, usuario = $21,
			ativo = $22, updated_at = now()
		WHERE id = $1`,
		e.ID, e.FirstName, e.LastName, e.BirthDate, e.CPF, e.RG, e.Phone, e.Mobile, e.Email,
		e.ZipCode, e.Street, e.Number, e.Complement, e.District, e.City, e.State,
		e.RoleID, e.HireDate, e.Salary, e.CustomCommission, e.Username, e.Active,
	)
	if err != nil {
		return mapWriteError("update colaborador", err)
	}
	return rowsAffected(tag.RowsAffected(), "Colaborador não encontrado")
}

// UpdatePassword reemplaza el hash de la senha.
func (r *EmployeeRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	tag, err := r.q.Exec(ctx, `UPDATE colaboradores SET senha = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("update senha: %w", err)
	}
	return rowsAffected(tag.RowsAffected(), "Colaborador não encontrado")
}

// Delete elimina el colaborador.
func (r *EmployeeRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM colaboradores WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete colaborador", err)
	}
	return rowsAffected(tag.RowsAffected(), "Colaborador não encontrado")
}

// Deactivate marca ativo = false.
func (r *EmployeeRepo) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE colaboradores SET ativo = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("inativar colaborador: %w", err)
	}
	return rowsAffected(tag.RowsAffected(), "Colaborador não encontrado")
}

// CountSales cuenta ventas donde el colaborador es vendedor.
func (r *EmployeeRepo) CountSales(ctx context.Context, id int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM vendas WHERE vendedor_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count vendas do colaborador: %w", err)
	}
	return n, nil
}

// RegisterLoginSuccess reinicia el contador y sella el último acceso.
func (r *EmployeeRepo) RegisterLoginSuccess(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `
		UPDATE colaboradores SET ultimo_acesso = now(), tentativas_login = 0 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("registrar acesso: %w", err)
	}
	return nil
}

// RegisterLoginFailure incrementa y bloquea en la misma sentencia: los SET leen los valores previos a la fila.
func (r *EmployeeRepo) RegisterLoginFailure(ctx context.Context, username string, maxAttempts int) error {
	_, err := r.q.Exec(ctx, `
		UPDATE colaboradores SET
			tentativas_login = tentativas_login + 1,
			bloqueado = bloqueado OR tentativas_login + 1 >= $2,
			bloqueado_em = CASE
				WHEN NOT bloqueado AND tentativas_login + 1 >= $2 THEN now()
				ELSE bloqueado_em
			END
		WHERE usuario = $1`, username, maxAttempts)
	if err != nil {
		return fmt.Errorf("registrar tentativa de login: %w", err)
	}
	return nil
}

// UnlockExpired libera bloqueos anteriores a lockedBefore.
func (r *EmployeeRepo) UnlockExpired(ctx context.Context, username string, lockedBefore time.Time) error {
	_, err := r.q.Exec(ctx, `
		UPDATE colaboradores SET bloqueado = FALSE, bloqueado_em = NULL, tentativas_login = 0
		WHERE usuario = $1 AND bloqueado AND bloqueado_em IS NOT NULL AND bloqueado_em < $2`,
		username, lockedBefore)
	if err != nil {
		return fmt.Errorf("expirar bloqueio: %w", err)
	}
	return nil
}

// Unlock desbloqueo manual por un administrador.
func (r *EmployeeRepo) Unlock(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE colaboradores SET bloqueado = FALSE, bloqueado_em = NULL, tentativas_login = 0, updated_at = now()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("desbloquear colaborador: %w", err)
	}
	return rowsAffected(tag.RowsAffected(), "Colaborador não encontrado")
}
