package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfvaldes/ventapro-api/internal/application/dto"
	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
)

// createSale registra una venta válida o aborta el test.
func (f *saleFixture) createSale(t *testing.T, in dto.CreateSaleRequest) *dto.SaleResponse {
	t.Helper()
	resp, err := f.create.Create(context.Background(), testOperadorID, in)
	require.NoError(t, err, "la venta de partida debe registrarse")
	return resp
}

// countByType tally de movimientos por tipo.
func countByType(movs []*entity.StockMovement) map[entity.MovementType]int {
	out := make(map[entity.MovementType]int)
	for _, m := range movs {
		out[m.Type]++
	}
	return out
}

func TestCancelSale_ReponeStockYRegistraRetorno(t *testing.T) {
	f := newSaleFixture(t)
	f.seedProduct(t, testCafeID, "Café molido 500g", "8.99", 10)
	sale := f.createSale(t, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: testCafeID, Quantity: 3}},
		PaymentMethod: "CASH",
	})
	require.Equal(t, 7, f.productQuantity(t, testCafeID))

	resp, err := f.cancel.Cancel(context.Background(), sale.ID)

	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.PaymentStatus)
	assert.Equal(t, 10, f.productQuantity(t, testCafeID), "el stock vuelve al punto de partida")

	// El EXIT original no se borra: la cancelación agrega un RETURN
	movs, err := f.movements.ListByReference(sale.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2, "historial inmutable: EXIT original + RETURN")
	tally := countByType(movs)
	assert.Equal(t, 1, tally[entity.MovementExit])
	assert.Equal(t, 1, tally[entity.MovementReturn])
	for _, m := range movs {
		if m.Type == entity.MovementReturn {
			assert.Equal(t, 3, m.Quantity)
			assert.Equal(t, "Cancelación de venta", m.Reason)
			assert.Equal(t, sale.ID, m.Reference)
		}
	}

	// La venta queda en el estado terminal también en el repositorio
	stored, err := f.saleRepo.GetByID(sale.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.StatusCancelled, stored.PaymentStatus)
}

func TestCancelSale_FiadoReduceDeuda(t *testing.T) {
	f := newSaleFixture(t)
	f.seedProduct(t, testCafeID, "Café molido 500g", "50.00", 10)
	f.seedClient(t, testClienteID, "María Pérez", "500.00", "0")
	clientID := testClienteID
	sale := f.createSale(t, dto.CreateSaleRequest{
		ClientID:      &clientID,
		Items:         []dto.SaleItemRequest{{ProductID: testCafeID, Quantity: 2}},
		PaymentMethod: "STORE_CREDIT",
	})
	require.True(t, f.clientDebt(t, testClienteID).Equal(decimal.RequireFromString("100.00")))

	_, err := f.cancel.Cancel(context.Background(), sale.ID)

	require.NoError(t, err)
	assert.True(t, f.clientDebt(t, testClienteID).IsZero(), "la deuda de la venta se revierte")
	assert.Equal(t, 10, f.productQuantity(t, testCafeID))
}

func TestCancelSale_AbonoPrevio_DeudaNoQuedaNegativa(t *testing.T) {
	f := newSaleFixture(t)
	f.seedProduct(t, testCafeID, "Café molido 500g", "50.00", 10)
	f.seedClient(t, testClienteID, "María Pérez", "500.00", "0")
	clientID := testClienteID
	sale := f.createSale(t, dto.CreateSaleRequest{
		ClientID:      &clientID,
		Items:         []dto.SaleItemRequest{{ProductID: testCafeID, Quantity: 2}},
		PaymentMethod: "STORE_CREDIT",
	})

	// El cliente ya abonó 80 de los 100 cuando llega la cancelación
	require.NoError(t, f.clients.ReduceDebt(testClienteID, decimal.RequireFromString("80.00")))

	_, err := f.cancel.Cancel(context.Background(), sale.ID)

	require.NoError(t, err)
	assert.True(t, f.clientDebt(t, testClienteID).IsZero(),
		"la reducción se acota en cero, nunca deuda negativa")
}

func TestCancelSale_DobleCancelacionRechazada(t *testing.T) {
	f := newSaleFixture(t)
	f.seedProduct(t, testCafeID, "Café molido 500g", "8.99", 10)
	sale := f.createSale(t, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: testCafeID, Quantity: 3}},
		PaymentMethod: "CASH",
	})

	_, err := f.cancel.Cancel(context.Background(), sale.ID)
	require.NoError(t, err)

	_, err = f.cancel.Cancel(context.Background(), sale.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 10, f.productQuantity(t, testCafeID), "el stock se repone una sola vez")

	movs, merr := f.movements.ListByReference(sale.ID)
	require.NoError(t, merr)
	assert.Equal(t, 1, countByType(movs)[entity.MovementReturn], "un único RETURN")
}

func TestCancelSale_VentaInexistente(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.cancel.Cancel(context.Background(), "00000000-0000-0000-0000-0000000000ff")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelSale_ProductoEliminado_SeOmiteLaReposicion(t *testing.T) {
	f := newSaleFixture(t)
	f.seedProduct(t, testCafeID, "Café molido 500g", "8.99", 10)
	f.seedProduct(t, testArrozID, "Arroz 1kg", "2.50", 20)
	sale := f.createSale(t, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: testCafeID, Quantity: 2},
			{ProductID: testArrozID, Quantity: 4},
		},
		PaymentMethod: "CASH",
	})

	// El café se elimina del catálogo antes de la cancelación
	require.NoError(t, f.products.Delete(testCafeID))

	resp, err := f.cancel.Cancel(context.Background(), sale.ID)

	require.NoError(t, err, "la cancelación continúa aunque falte un producto")
	assert.Equal(t, "CANCELLED", resp.PaymentStatus)
	assert.Equal(t, 20, f.productQuantity(t, testArrozID), "la línea viva sí se repone")

	movs, merr := f.movements.ListByReference(sale.ID)
	require.NoError(t, merr)
	tally := countByType(movs)
	assert.Equal(t, 2, tally[entity.MovementExit], "los EXIT originales no se tocan")
	assert.Equal(t, 1, tally[entity.MovementReturn], "solo la línea con producto vivo genera RETURN")
}
