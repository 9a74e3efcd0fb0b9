package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Description    string          `json:"description"`
	CategoryID     string          `json:"category_id" validate:"omitempty,uuid"`
	SupplierID     string          `json:"supplier_id" validate:"omitempty,uuid"`
	SalePrice      decimal.Decimal `json:"sale_price"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	Quantity       int             `json:"quantity" validate:"min=0"`
	MinQuantity    int             `json:"min_quantity" validate:"min=0"`
	ExpirationDate *time.Time      `json:"expiration_date"`
}

// UpdateProductRequest entrada para actualizar un producto. Quantity no se
// toca aquí, se maneja vía movimientos de stock.
type UpdateProductRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description    *string          `json:"description"`
	CategoryID     *string          `json:"category_id"`
	SupplierID     *string          `json:"supplier_id"`
	SalePrice      *decimal.Decimal `json:"sale_price"`
	CostPrice      *decimal.Decimal `json:"cost_price"`
	MinQuantity    *int             `json:"min_quantity"`
	IsActive       *bool            `json:"is_active"`
	ExpirationDate *time.Time       `json:"expiration_date"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	CategoryID     string          `json:"category_id,omitempty"`
	SupplierID     string          `json:"supplier_id,omitempty"`
	SalePrice      decimal.Decimal `json:"sale_price"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	Quantity       int             `json:"quantity"`
	MinQuantity    int             `json:"min_quantity"`
	IsActive       bool            `json:"is_active"`
	LowStock       bool            `json:"low_stock"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
