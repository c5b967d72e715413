package dto

import "github.com/jhoicas/micro-erp/internal/domain/entity"

// Response sobre uniforme de todas las respuestas de la API.
// Success=false con HTTP 200 es un fallo de negocio; Code lo identifica para máquinas.
type Response struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message,omitempty"`
	Code        string            `json:"code,omitempty"`
	Data        any               `json:"data,omitempty"`
	ID          *int64            `json:"id,omitempty"`
	NumeroVenda string            `json:"numero_venda,omitempty"`
	User        *entity.Principal `json:"user,omitempty"`
	Token       string            `json:"token,omitempty"`
}

// Códigos de error del sobre.
const (
	CodeValidation        = "VALIDATION"
	CodeDuplicate         = "DUPLICATE"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL"
)

// DeleteResult resultado de un borrado: Deactivated indica soft delete por referencias.
type DeleteResult struct {
	Deactivated bool
	Message     string
}
