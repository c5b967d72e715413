package entity

import "time"

// Category categoría de productos.
type Category struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"nome" json:"nome"`
	Description *string   `db:"descricao" json:"descricao"`
	Active      bool      `db:"ativo" json:"ativo"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
