// Package inventory agrupa reglas de dominio del inventario que no
// pertenecen a una entidad concreta.
package inventory

import "github.com/shopspring/decimal"

// AverageCost calcula el costo promedio ponderado de un producto tras
// recibir mercadería:
//
//	nuevo = (existencia*costoActual + entrada*costoEntrada) / (existencia + entrada)
//
// Si la existencia previa es cero el resultado es el costo de la entrada.
// Si la suma de cantidades es cero devuelve cero.
func AverageCost(onHand, currentCost, received, receivedCost decimal.Decimal) decimal.Decimal {
	total := onHand.Add(received)
	if !total.IsPositive() {
		return decimal.Zero
	}
	value := onHand.Mul(currentCost).Add(received.Mul(receivedCost))
	return value.Div(total)
}
