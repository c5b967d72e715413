package entity

import "time"

// Principal colaborador autenticado de la petición en curso.
type Principal struct {
	EmployeeID  int64       `json:"id"`
	Name        string      `json:"nome"`
	AccessLevel AccessLevel `json:"nivel_acesso"`
	RoleName    string      `json:"cargo"`
	TokenID     string      `json:"-"`
	ExpiresAt   time.Time   `json:"-"`
}

// Allows delega en la jerarquía de niveles.
func (p *Principal) Allows(required AccessLevel) bool {
	if p == nil {
		return false
	}
	return p.AccessLevel.Allows(required)
}
