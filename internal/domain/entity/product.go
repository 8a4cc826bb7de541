package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es un ítem del catálogo (colección products). Pertenece a la empresa OwnerID
// y solo ella lo modifica. Active=false lo oculta a los compradores sin borrar historial.
type Product struct {
	ID           string
	OwnerID      string
	OwnerEmail   string
	CategoryID   string
	CategoryName string // copia del nombre de la categoría al guardar
	Name         string
	Description  string
	Ingredients  string
	Conditions   string // condiciones de entrega / consumo
	Type         string
	ImageURL     string
	Price        decimal.Decimal // CLP, >= 0
	Active       bool
	IsDefault    bool // creado por la importación del catálogo base
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
