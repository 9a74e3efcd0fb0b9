package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	TaxID       string          `json:"tax_id"`
	Email       string          `json:"email" validate:"omitempty,email"`
	Phone       string          `json:"phone"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// UpdateClientRequest entrada para actualizar un cliente. CurrentDebt nunca
// se edita directo, cambia con ventas a crédito y abonos.
type UpdateClientRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	TaxID       *string          `json:"tax_id"`
	Email       *string          `json:"email" validate:"omitempty,email"`
	Phone       *string          `json:"phone"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
	IsActive    *bool            `json:"is_active"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	TaxID           string          `json:"tax_id,omitempty"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	CurrentDebt     decimal.Decimal `json:"current_debt"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// RegisterPaymentRequest entrada para registrar un abono a la deuda.
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Notes  string          `json:"notes"`
}
