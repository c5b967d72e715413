package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)

// ValidationError acumula los mensajes de validación de un recurso.
// errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Messages []string
}

// NewValidationError crea el error con los mensajes dados.
func NewValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Messages: msgs}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// DuplicateError indica que un campo único ya existe (cpf, usuario, cnpj, codigo).
type DuplicateError struct {
	Field   string
	Message string
}

func (e *DuplicateError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Field + " duplicado"
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// ConflictError es una regla de negocio que impide la operación (p. ej. borrar cargo con colaboradores).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NotFoundError lleva el mensaje a mostrar para el recurso ausente.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InsufficientStockError la salida dejaría el estoque negativo.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	if e.ProductName == "" {
		return "Estoque insuficiente"
	}
	return "Estoque insuficiente para o produto " + e.ProductName
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
