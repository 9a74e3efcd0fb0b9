package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jfvaldes/ventapro-api/internal/domain/inventory"
)

func TestAverageCost_PromedioPonderado(t *testing.T) {
	tests := []struct {
		name         string
		onHand       string
		currentCost  string
		received     string
		receivedCost string
		want         string
	}{
		{
			name:   "recepción encarece el promedio",
			onHand: "10", currentCost: "4.00",
			received: "5", receivedCost: "7.00",
			want: "5",
		},
		{
			name:   "recepción abarata el promedio",
			onHand: "20", currentCost: "10.00",
			received: "20", receivedCost: "6.00",
			want: "8",
		},
		{
			name:   "sin existencia previa toma el costo de entrada",
			onHand: "0", currentCost: "0",
			received: "8", receivedCost: "3.25",
			want: "3.25",
		},
		{
			name:   "mismo costo no altera el promedio",
			onHand: "4", currentCost: "2.50",
			received: "6", receivedCost: "2.50",
			want: "2.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inventory.AverageCost(
				decimal.RequireFromString(tt.onHand),
				decimal.RequireFromString(tt.currentCost),
				decimal.RequireFromString(tt.received),
				decimal.RequireFromString(tt.receivedCost),
			)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"esperaba %s, obtuve %s", tt.want, got)
		})
	}
}

func TestAverageCost_SinCantidadesDevuelveCero(t *testing.T) {
	got := inventory.AverageCost(decimal.Zero, decimal.NewFromInt(9), decimal.Zero, decimal.NewFromInt(9))
	assert.True(t, got.IsZero(), "sin unidades el promedio debe ser cero")
}
