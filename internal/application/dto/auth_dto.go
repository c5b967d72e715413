package dto

import "github.com/jhoicas/micro-erp/internal/domain/entity"

// LoginRequest cuerpo de POST /api/login.
type LoginRequest struct {
	Username string `json:"usuario"`
	Password string `json:"senha"`
}

// LoginResult sesión emitida tras un login correcto.
type LoginResult struct {
	User  entity.Principal
	Token string
}
