package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

var customerColumns = []string{
	"id", "tipo_pessoa", "nome", "sobrenome", "cpf", "rg", "data_nascimento",
	"razao_social", "nome_fantasia", "cnpj", "inscricao_estadual",
	"telefone", "celular", "email", "cep", "endereco", "numero", "complemento", "bairro", "cidade", "estado",
	"observacoes", "ativo", "created_at", "updated_at",
}

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// customerListQuery arma el SELECT del listado según los filtros.
func customerListQuery(f repository.CustomerFilter) squirrel.SelectBuilder {
	qb := psql.Select(customerColumns...).From("clientes").OrderBy("COALESCE(nome, razao_social)")
	if f.Active != nil {
		qb = qb.Where(squirrel.Eq{"ativo": *f.Active})
	}
	if f.PersonType != "" {
		qb = qb.Where(squirrel.Eq{"tipo_pessoa": f.PersonType})
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		qb = qb.Where(squirrel.Or{
			squirrel.ILike{"nome": pattern},
			squirrel.ILike{"sobrenome": pattern},
			squirrel.ILike{"razao_social": pattern},
			squirrel.ILike{"nome_fantasia": pattern},
			squirrel.Like{"cpf": pattern},
			squirrel.Like{"cnpj": pattern},
		})
	}
	return qb
}

func (r *CustomerRepo) List(ctx context.Context, f repository.CustomerFilter) ([]entity.Customer, error) {
	query, args, err := customerListQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list clientes: %w", err)
	}
	list := []entity.Customer{}
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	return list, nil
}

// GetByID obtiene un cliente; (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	query, args, err := psql.Select(customerColumns...).From("clientes").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get cliente: %w", err)
	}
	return getOne("get cliente", func(dst *entity.Customer) error {
		return pgxscan.Get(ctx, r.q, dst, query, args...)
	})
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO clientes (
			tipo_pessoa, nome, sobrenome, cpf, rg, data_nascimento,
			razao_social, nome_fantasia, cnpj, inscricao_estadual,
			telefone, celular, email, cep, endereco, numero, complemento, bairro, cidade, estado,
			observacoes, ativo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id, created_at, updated_at`,
		c.PersonType, c.FirstName, c.LastName, c.CPF, c.RG, c.BirthDate,
		c.LegalName, c.TradeName, c.CNPJ, c.StateRegistration,
		c.Phone, c.Mobile, c.Email, c.ZipCode, c.Street, c.Number, c.Complement, c.District, c.City, c.State,
		c.Notes, c.Active,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return mapWriteError("insert cliente", err)
	}
	return nil
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE clientes SET
			tipo_pessoa = $2, nome = $3, sobrenome = $4, cpf = $5, rg = $6, data_nascimento = $7,
			razao_social = $8, nome_fantasia = $9, cnpj = $10, inscricao_estadual = $11,
			telefone = $12, celular = $13, email = $14, cep = $15, endereco = $16, numero = $17,
			complemento = $18, bairro = $19, cidade = $20, estado = $21, observacoes = $22, ativo = $23,
			updated_at = now()
		WHERE id = $1`,
		c.ID, c.PersonType, c.FirstName, c.LastName, c.CPF, c.RG, c.BirthDate,
		c.LegalName, c.TradeName, c.CNPJ, c.StateRegistration,
		c.Phone, c.Mobile, c.Email, c.ZipCode, c.Street, c.Number,
		c.Complement, c.District, c.City, c.State, c.Notes, c.Active,
	)
	if err != nil {
		return mapWriteError("update cliente", err)
	}
	return rowsAffected(tag.RowsAffected(), "Cliente não encontrado")
}

func (r *CustomerRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete cliente", err)
	}
	return rowsAffected(tag.RowsAffected(), "Cliente não encontrado")
}

func (r *CustomerRepo) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE clientes SET ativo = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("inativar cliente: %w", err)
	}
	return rowsAffected(tag.RowsAffected(), "Cliente não encontrado")
}

func (r *CustomerRepo) CountSales(ctx context.Context, id int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM vendas WHERE cliente_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count vendas do cliente: %w", err)
	}
	return n, nil
}
