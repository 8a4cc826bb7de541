package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de un producto del catálogo.
type CreateProductRequest struct {
	CategoryID  string          `json:"category_id" validate:"required"`
	Name        string          `json:"name" validate:"required,min=3"`
	Description string          `json:"description" validate:"required,min=10"`
	Ingredients string          `json:"ingredients" validate:"required,min=10"`
	Conditions  string          `json:"conditions" validate:"required,min=10"`
	Type        string          `json:"type"`
	ImageURL    string          `json:"image_url" validate:"omitempty,url"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Active      *bool           `json:"active"` // nil = true
}

// UpdateProductRequest edición parcial (solo el dueño). Campos nil no se modifican.
type UpdateProductRequest struct {
	CategoryID  *string          `json:"category_id,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Ingredients *string          `json:"ingredients,omitempty"`
	Conditions  *string          `json:"conditions,omitempty"`
	Type        *string          `json:"type,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	OwnerID      string          `json:"owner_id"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Ingredients  string          `json:"ingredients"`
	Conditions   string          `json:"conditions"`
	Type         string          `json:"type,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Active       bool            `json:"active"`
	IsDefault    bool            `json:"is_default"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ImportCatalogResponse resumen de la importación del catálogo base.
type ImportCatalogResponse struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
}
