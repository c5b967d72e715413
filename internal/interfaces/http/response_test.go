package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/domain"
)

func TestClassify_ErroresEnvueltos(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		msg  string
	}{
		{"validación", fmt.Errorf("cliente: crear: %w", domain.NewValidationError("Nome é obrigatório", "CPF inválido")),
			dto.CodeValidation, "Nome é obrigatório, CPF inválido"},
		{"duplicado", fmt.Errorf("colaborador: crear: %w", &domain.DuplicateError{Field: "cpf", Message: "CPF já cadastrado"}),
			dto.CodeDuplicate, "CPF já cadastrado"},
		{"no encontrado", fmt.Errorf("venda: %w", &domain.NotFoundError{Message: "Venda não encontrada"}),
			dto.CodeNotFound, "Venda não encontrada"},
		{"conflicto", &domain.ConflictError{Message: "Venda cancelada não pode ser alterada"},
			dto.CodeConflict, "Venda cancelada não pode ser alterada"},
		{"estoque", fmt.Errorf("venda: %w", &domain.InsufficientStockError{ProductName: "Roteador"}),
			dto.CodeInsufficientStock, "Estoque insuficiente para o produto Roteador"},
		{"credenciales", domain.ErrInvalidCredentials, dto.CodeUnauthorized, "Usuário ou senha inválidos"},
		{"token", errors.Join(domain.ErrUnauthorized, errors.New("token is expired")), dto.CodeUnauthorized, "Não autenticado"},
		{"prohibido", domain.ErrForbidden, dto.CodeForbidden, "Acesso negado"},
		{"ruta", fiber.ErrNotFound, dto.CodeNotFound, "Endpoint não encontrado"},
		{"desconocido", errors.New("pq: connection refused"), dto.CodeInternal, msgInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := classify(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.msg, msg)
		})
	}
}
