package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su existencia actual.
// Quantity nunca es negativo; lo muta únicamente el libro de inventario
// (ventas, cancelaciones y movimientos directos), jamás un update genérico.
type Product struct {
	ID             string
	Name           string
	Description    string
	CategoryID     string // vacío si no está categorizado
	SupplierID     string // vacío si no tiene proveedor asociado
	SalePrice      decimal.Decimal // precio de venta al público
	CostPrice      decimal.Decimal // costo de adquisición
	Quantity       int             // existencia actual (unidades enteras)
	MinQuantity    int             // umbral de alerta de stock bajo
	IsActive       bool
	ExpirationDate *time.Time // opcional, para perecederos
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LowStock indica si la existencia está en o por debajo del umbral de alerta.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.MinQuantity
}
