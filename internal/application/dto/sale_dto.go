package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta en la entrada.
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateSaleRequest entrada para registrar una venta. UserID identifica al
// operador que la registra.
type CreateSaleRequest struct {
	ClientID      *string           `json:"client_id" validate:"omitempty,uuid"`
	UserID        string            `json:"user_id" validate:"required,uuid"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	Discount      decimal.Decimal   `json:"discount"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=CASH CARD PIX STORE_CREDIT"`
	Notes         string            `json:"notes"`
}

// SaleItemResponse línea de venta en la salida, con los datos del producto
// congelados al momento de la venta.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	ClientID      *string            `json:"client_id,omitempty"`
	UserID        string             `json:"user_id"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	PaymentStatus string             `json:"payment_status"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ListSalesRequest filtros para el listado de ventas.
type ListSalesRequest struct {
	Status string     `query:"status" validate:"omitempty,oneof=PENDING PAID CANCELLED"`
	From   *time.Time `query:"from"`
	To     *time.Time `query:"to"`
	PageRequest
}
