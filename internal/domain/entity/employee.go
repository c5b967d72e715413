package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee colaborador de la empresa; también es la cuenta de acceso al sistema.
type Employee struct {
	ID        int64   `db:"id" json:"id"`
	FirstName string  `db:"nome" json:"nome"`
	LastName  string  `db:"sobrenome" json:"sobrenome"`
	BirthDate *Date   `db:"data_nascimento" json:"data_nascimento"`
	CPF       string  `db:"cpf" json:"cpf"`
	RG        *string `db:"rg" json:"rg"`
	Phone     *string `db:"telefone" json:"telefone"`
	Mobile    *string `db:"celular" json:"celular"`
	Email     *string `db:"email" json:"email"`
	Address
	RoleID              int64            `db:"cargo_id" json:"cargo_id"`
	HireDate            *Date            `db:"data_admissao" json:"data_admissao"`
	Salary              *decimal.Decimal `db:"salario" json:"salario"`
	CustomCommission    *decimal.Decimal `db:"comissao_personalizada" json:"comissao_personalizada"`
	Username            string           `db:"usuario" json:"usuario"`
	PasswordHash        string           `db:"senha" json:"-"` // bcrypt hash
	Active              bool             `db:"ativo" json:"ativo"`
	Locked              bool             `db:"bloqueado" json:"bloqueado"`
	LockedAt            *time.Time       `db:"bloqueado_em" json:"bloqueado_em"`
	FailedLoginAttempts int              `db:"tentativas_login" json:"tentativas_login"`
	LastAccess          *time.Time       `db:"ultimo_acesso" json:"ultimo_acesso"`
	CreatedAt           time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time        `db:"updated_at" json:"updated_at"`

	// Columnas del JOIN con cargos.
	RoleName        string      `db:"cargo_nome" json:"cargo_nome"`
	RoleAccessLevel AccessLevel `db:"nivel_acesso" json:"nivel_acesso"`
}

// DisplayName nombre y apellido.
func (e *Employee) DisplayName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Address campos de dirección compartidos por colaboradores y clientes.
type Address struct {
	ZipCode    *string `db:"cep" json:"cep"`
	Street     *string `db:"endereco" json:"endereco"`
	Number     *string `db:"numero" json:"numero"`
	Complement *string `db:"complemento" json:"complemento"`
	District   *string `db:"bairro" json:"bairro"`
	City       *string `db:"cidade" json:"cidade"`
	State      *string `db:"estado" json:"estado"`
}
