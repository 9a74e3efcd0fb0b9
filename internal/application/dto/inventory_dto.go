package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// RETURN no se acepta aquí, lo genera la cancelación de ventas.
// Para ENTRY/EXIT/LOSS, Quantity es la cantidad movida (>0). Para
// ADJUSTMENT, Quantity es el conteo físico al que se lleva el stock (>=0);
// el movimiento registra la diferencia.
type RegisterMovementRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	UserID    string          `json:"user_id" validate:"omitempty,uuid"`
	Type      string          `json:"type" validate:"required,oneof=ENTRY EXIT ADJUSTMENT LOSS"`
	Quantity  int             `json:"quantity" validate:"min=0"`
	Reason    string          `json:"reason"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// MovementResponse salida de un movimiento de stock.
type MovementResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Type       string          `json:"type"`
	Quantity   int             `json:"quantity"`
	Reason     string          `json:"reason,omitempty"`
	Reference  string          `json:"reference,omitempty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedBy  string          `json:"created_by,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// MovementListResponse historial paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ListMovementsRequest filtros para el historial de un producto.
type ListMovementsRequest struct {
	From *time.Time `query:"from"`
	To   *time.Time `query:"to"`
	PageRequest
}

// LowStockItem producto activo en o por debajo de su mínimo.
type LowStockItem struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
}
