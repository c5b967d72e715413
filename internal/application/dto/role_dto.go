package dto

import "github.com/shopspring/decimal"

// RoleRequest cuerpo de alta/edición de cargo.
type RoleRequest struct {
	Name              string          `json:"nome"`
	Description       *string         `json:"descricao"`
	AccessLevel       string          `json:"nivel_acesso"`
	BaseSalary        decimal.Decimal `json:"salario_base"`
	DefaultCommission decimal.Decimal `json:"comissao_padrao"`
	Active            *bool           `json:"ativo"`
}
