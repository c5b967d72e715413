package entity

import "time"

// PersonType tipo de pessoa del cliente.
type PersonType string

// Tipos de pessoa.
const (
	PersonIndividual PersonType = "fisica"
	PersonCompany    PersonType = "juridica"
)

// Valid indica si el tipo es fisica o juridica.
func (p PersonType) Valid() bool {
	return p == PersonIndividual || p == PersonCompany
}

// Customer cliente: pessoa física (nome + CPF) o jurídica (razão social + CNPJ).
// Solo una de las dos identidades queda persistida.
type Customer struct {
	ID         int64      `db:"id" json:"id"`
	PersonType PersonType `db:"tipo_pessoa" json:"tipo_pessoa"`

	FirstName *string `db:"nome" json:"nome"`
	LastName  *string `db:"sobrenome" json:"sobrenome"`
	CPF       *string `db:"cpf" json:"cpf"`
	RG        *string `db:"rg" json:"rg"`
	BirthDate *Date   `db:"data_nascimento" json:"data_nascimento"`

	LegalName         *string `db:"razao_social" json:"razao_social"`
	TradeName         *string `db:"nome_fantasia" json:"nome_fantasia"`
	CNPJ              *string `db:"cnpj" json:"cnpj"`
	StateRegistration *string `db:"inscricao_estadual" json:"inscricao_estadual"`

	Phone  *string `db:"telefone" json:"telefone"`
	Mobile *string `db:"celular" json:"celular"`
	Email  *string `db:"email" json:"email"`
	Address
	Notes     *string   `db:"observacoes" json:"observacoes"`
	Active    bool      `db:"ativo" json:"ativo"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DisplayName nome + sobrenome para pessoa física, razão social para jurídica.
func (c *Customer) DisplayName() string {
	if c.PersonType == PersonCompany {
		return deref(c.LegalName)
	}
	name := deref(c.FirstName)
	if last := deref(c.LastName); last != "" {
		name += " " + last
	}
	return name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
