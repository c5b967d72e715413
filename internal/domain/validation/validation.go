// Package validation reúne las comprobaciones de entrada compartidas por los casos de uso.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/pkg/taxid"
)

var (
	validate = validator.New()
	hundred  = decimal.NewFromInt(100)
)

// Errors acumula mensajes de validación en orden de aparición.
type Errors struct {
	msgs []string
}

// Add agrega un mensaje.
func (e *Errors) Add(msg string) {
	e.msgs = append(e.msgs, msg)
}

// Check agrega msg cuando ok es false.
func (e *Errors) Check(ok bool, msg string) {
	if !ok {
		e.Add(msg)
	}
}

// Required agrega msg si s está vacío tras recortar espacios.
func (e *Errors) Required(s string, msg string) {
	e.Check(!Blank(s), msg)
}

// Err devuelve nil o un *domain.ValidationError con los mensajes acumulados.
func (e *Errors) Err() error {
	if len(e.msgs) == 0 {
		return nil
	}
	out := make([]string, len(e.msgs))
	copy(out, e.msgs)
	return domain.NewValidationError(out...)
}

// Blank indica cadena vacía o solo espacios.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// BlankPtr indica puntero nil o cadena vacía.
func BlankPtr(s *string) bool {
	return s == nil || Blank(*s)
}

// Email valida la forma de un e-mail.
func Email(s string) bool {
	return validate.Var(strings.TrimSpace(s), "required,email") == nil
}

// Percent valida 0 <= d <= 100.
func Percent(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(hundred)
}

// CPF valida el CPF por dígitos verificadores.
func CPF(s string) bool {
	return taxid.ValidCPF(s)
}

// CNPJ valida el CNPJ por dígitos verificadores.
func CNPJ(s string) bool {
	return taxid.ValidCNPJ(s)
}

// TrimPtr recorta espacios y devuelve nil para cadenas vacías.
func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
