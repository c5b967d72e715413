// Package migrations contiene el esquema versionado de la base de datos (golang-migrate).
package migrations

import "embed"

// FS archivos NNNNNN_nombre.{up,down}.sql.
//
//go:embed *.sql
var FS embed.FS
