package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccessLevel nivel de acceso de un cargo. Los niveles forman una jerarquía ordinal.
type AccessLevel string

// Niveles válidos, de menor a mayor.
const (
	LevelFuncionario AccessLevel = "funcionario"
	LevelVendedor    AccessLevel = "vendedor"
	LevelGerente     AccessLevel = "gerente"
	LevelAdmin       AccessLevel = "admin"
)

var levelRank = map[AccessLevel]int{
	LevelFuncionario: 1,
	LevelVendedor:    2,
	LevelGerente:     3,
	LevelAdmin:       4,
}

// Valid indica si el nivel pertenece a la jerarquía.
func (l AccessLevel) Valid() bool {
	_, ok := levelRank[l]
	return ok
}

// Allows indica si el nivel alcanza el requerido. Un nivel desconocido (propio o requerido) nunca pasa.
func (l AccessLevel) Allows(required AccessLevel) bool {
	have, ok := levelRank[l]
	if !ok {
		return false
	}
	need, ok := levelRank[required]
	if !ok {
		return false
	}
	return have >= need
}

// Role cargo de la empresa: define nivel de acceso y comisión por defecto.
type Role struct {
	ID                int64           `db:"id" json:"id"`
	Name              string          `db:"nome" json:"nome"`
	Description       *string         `db:"descricao" json:"descricao"`
	AccessLevel       AccessLevel     `db:"nivel_acesso" json:"nivel_acesso"`
	BaseSalary        decimal.Decimal `db:"salario_base" json:"salario_base"`
	DefaultCommission decimal.Decimal `db:"comissao_padrao" json:"comissao_padrao"`
	Active            bool            `db:"ativo" json:"ativo"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}
