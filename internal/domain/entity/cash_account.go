package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta financiera.
const (
	AccountCash = "CASH" // caja física
	AccountBank = "BANK" // cuenta bancaria
)

// CashAccount representa una cuenta financiera de la tienda (caja o banco).
type CashAccount struct {
	ID        string
	Name      string
	Type      string // CASH, BANK
	Balance   decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
