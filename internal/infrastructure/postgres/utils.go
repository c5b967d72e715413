package postgres

import (
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/micro-erp/internal/domain"
)

// psql builder de squirrel con placeholders $1, $2...
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Mensajes por constraint único (23505).
var uniqueMessages = map[string]*domain.DuplicateError{
	"colaboradores_cpf_key":        {Field: "cpf", Message: "CPF já cadastrado"},
	"colaboradores_usuario_key":    {Field: "usuario", Message: "Usuário já cadastrado"},
	"clientes_cpf_key":             {Field: "cpf", Message: "CPF já cadastrado"},
	"clientes_cnpj_key":            {Field: "cnpj", Message: "CNPJ já cadastrado"},
	"produtos_codigo_key":          {Field: "codigo", Message: "Código já cadastrado"},
	"categorias_produtos_nome_key": {Field: "nome", Message: "Categoria já cadastrada"},
}

// Mensajes por foreign key (23503) al insertar o actualizar.
var foreignKeyMessages = map[string]string{
	"colaboradores_cargo_id_fkey": "Cargo não encontrado",
	"produtos_categoria_id_fkey":  "Categoria não encontrada",
	"vendas_cliente_id_fkey":      "Cliente não encontrado",
	"vendas_vendedor_id_fkey":     "Vendedor não encontrado",
	"itens_venda_produto_id_fkey": "Produto não encontrado",
}

// mapWriteError traduce errores de constraint a errores de dominio; el resto se envuelve con op.
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if d, ok := uniqueMessages[pgErr.ConstraintName]; ok {
				dup := *d
				return &dup
			}
			return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
		case "23503": // foreign_key_violation
			if msg, ok := foreignKeyMessages[pgErr.ConstraintName]; ok {
				return &domain.NotFoundError{Message: msg}
			}
			return fmt.Errorf("%s: %w", op, domain.ErrConflict)
		case "23514": // check_violation
			return fmt.Errorf("%s: %w: %s", op, domain.ErrInvalidInput, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// getOne ejecuta la consulta y escanea una fila; (nil, nil) si no hay filas.
func getOne[T any](op string, scan func(dst *T) error) (*T, error) {
	var v T
	if err := scan(&v); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &v, nil
}

// rowsAffected devuelve *domain.NotFoundError con msg cuando el UPDATE/DELETE no tocó filas.
func rowsAffected(n int64, msg string) error {
	if n == 0 {
		return &domain.NotFoundError{Message: msg}
	}
	return nil
}
