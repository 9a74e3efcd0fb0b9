package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAccountRequest entrada para crear una cuenta de caja o banco.
type CreateAccountRequest struct {
	Name    string          `json:"name" validate:"required,min=1,max=100"`
	Type    string          `json:"type" validate:"required,oneof=CASH BANK"`
	Balance decimal.Decimal `json:"balance"`
}

// UpdateAccountRequest entrada para actualizar una cuenta.
type UpdateAccountRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	IsActive *bool   `json:"is_active"`
}

// AccountResponse salida de una cuenta.
type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
