package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client representa un cliente de la tienda con su línea de crédito.
// CurrentDebt se mantiene siempre en 0 ≤ deuda ≤ CreditLimit; la mutación
// pasa únicamente por el libro de crédito (ventas fiadas, cancelaciones y abonos).
// Un CreditLimit de 0 significa que el cliente no puede comprar a crédito.
type Client struct {
	ID          string
	Name        string
	TaxID       string // NIT, cédula o CPF según el país
	Email       string
	Phone       string
	CreditLimit decimal.Decimal
	CurrentDebt decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AvailableCredit devuelve el crédito aún disponible (límite menos deuda actual).
func (c *Client) AvailableCredit() decimal.Decimal {
	return c.CreditLimit.Sub(c.CurrentDebt)
}
