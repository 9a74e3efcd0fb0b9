package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType clasifica un movimiento de inventario. Conjunto cerrado.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementEntry      MovementType = "ENTRY"      // entrada de mercadería
	MovementExit       MovementType = "EXIT"       // salida por venta o retiro manual
	MovementAdjustment MovementType = "ADJUSTMENT" // ajuste por conteo físico
	MovementReturn     MovementType = "RETURN"     // devolución por cancelación de venta
	MovementLoss       MovementType = "LOSS"       // merma, rotura o vencimiento
)

// IsValid reporta si el tipo pertenece al conjunto cerrado.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementEntry, MovementExit, MovementAdjustment, MovementReturn, MovementLoss:
		return true
	}
	return false
}

// Direction devuelve el signo que el tipo aplica sobre la existencia:
// +1 suma unidades, -1 resta, 0 depende del ajuste (puede ir en ambos sentidos).
func (t MovementType) Direction() int {
	switch t {
	case MovementEntry, MovementReturn:
		return 1
	case MovementExit, MovementLoss:
		return -1
	default:
		return 0
	}
}

// StockMovement es el registro inmutable de un cambio de existencia.
// Se crea una vez y nunca se actualiza ni se borra; es la pista de auditoría
// que reconcilia los cambios de Product.Quantity.
type StockMovement struct {
	ID         string
	ProductID  string
	Type       MovementType
	Quantity   int    // siempre positivo; el signo lo implica Type
	Reason     string // texto libre: "Venta POS", "Conteo físico", etc.
	Reference  string // documento asociado, p. ej. el ID de la venta
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	CreatedBy  string // UserID del operador
	CreatedAt  time.Time
}
