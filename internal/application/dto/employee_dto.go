package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
)

// AddressRequest campos de dirección.
type AddressRequest struct {
	ZipCode    *string `json:"cep"`
	Street     *string `json:"endereco"`
	Number     *string `json:"numero"`
	Complement *string `json:"complemento"`
	District   *string `json:"bairro"`
	City       *string `json:"cidade"`
	State      *string `json:"estado"`
}

// EmployeeRequest cuerpo de alta/edición de colaborador. Password vacío en edición mantiene la actual.
type EmployeeRequest struct {
	FirstName string       `json:"nome"`
	LastName  string       `json:"sobrenome"`
	BirthDate *entity.Date `json:"data_nascimento"`
	CPF       string       `json:"cpf"`
	RG        *string      `json:"rg"`
	Phone     *string      `json:"telefone"`
	Mobile    *string      `json:"celular"`
	Email     *string      `json:"email"`
	AddressRequest
	RoleID           int64            `json:"cargo_id"`
	HireDate         *entity.Date     `json:"data_admissao"`
	Salary           *decimal.Decimal `json:"salario"`
	CustomCommission *decimal.Decimal `json:"comissao_personalizada"`
	Username         string           `json:"usuario"`
	Password         string           `json:"senha"`
	Active           *bool            `json:"ativo"`
}
