package entity

import "time"

// Category representa una categoría de primer nivel del catálogo.
type Category struct {
	ID          string // slug, ej. "coffee-break-eventos"
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
