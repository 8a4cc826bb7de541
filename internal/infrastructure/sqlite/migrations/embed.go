// Package migrations contiene el esquema del almacén local de carritos.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
