package dto

import "github.com/jhoicas/micro-erp/internal/domain/entity"

// CustomerRequest cuerpo de alta/edición de cliente. Según PersonType se conservan
// los campos de pessoa física o los de jurídica; los otros se descartan.
type CustomerRequest struct {
	PersonType        string       `json:"tipo_pessoa"`
	FirstName         *string      `json:"nome"`
	LastName          *string      `json:"sobrenome"`
	CPF               *string      `json:"cpf"`
	RG                *string      `json:"rg"`
	BirthDate         *entity.Date `json:"data_nascimento"`
	LegalName         *string      `json:"razao_social"`
	TradeName         *string      `json:"nome_fantasia"`
	CNPJ              *string      `json:"cnpj"`
	StateRegistration *string      `json:"inscricao_estadual"`
	Phone             *string      `json:"telefone"`
	Mobile            *string      `json:"celular"`
	Email             *string      `json:"email"`
	AddressRequest
	Notes  *string `json:"observacoes"`
	Active *bool   `json:"ativo"`
}
