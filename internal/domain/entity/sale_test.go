package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del agregado Sale. Los totales se calculan con decimal, no con float:
// 3 × 8.99 debe dar exactamente 26.97, sin residuos binarios.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID = "00000000-0000-0000-0000-00000000000a"
	testUserID    = "00000000-0000-0000-0000-00000000000b"
	testClientID  = "00000000-0000-0000-0000-00000000000c"
)

// buildItem construye una línea válida o aborta el test.
func buildItem(t *testing.T, quantity int, unitPrice, discount string) entity.SaleItem {
	t.Helper()
	item, err := entity.NewSaleItem(
		testProductID,
		"Café molido 500g",
		quantity,
		decimal.RequireFromString(unitPrice),
		decimal.RequireFromString(discount),
	)
	require.NoError(t, err, "la línea de prueba debe ser válida")
	return *item
}

func TestNewSaleItem_TotalExacto(t *testing.T) {
	item, err := entity.NewSaleItem(testProductID, "Café molido 500g", 3,
		decimal.RequireFromString("8.99"), decimal.Zero)

	require.NoError(t, err)
	assert.True(t, item.Total.Equal(decimal.RequireFromString("26.97")),
		"3 × 8.99 debe dar 26.97 exacto, se obtuvo %s", item.Total)
	assert.NotEmpty(t, item.ID, "la línea debe recibir un ID propio")
	assert.Equal(t, "Café molido 500g", item.ProductName, "el nombre queda congelado en la línea")
}

func TestNewSaleItem_DescuentoRestaDelSubtotal(t *testing.T) {
	item, err := entity.NewSaleItem(testProductID, "Arroz 1kg", 2,
		decimal.RequireFromString("10.00"), decimal.RequireFromString("3.50"))

	require.NoError(t, err)
	assert.True(t, item.Total.Equal(decimal.RequireFromString("16.50")),
		"2 × 10.00 − 3.50 debe dar 16.50, se obtuvo %s", item.Total)
}

func TestNewSaleItem_EntradasInvalidas(t *testing.T) {
	cases := []struct {
		name      string
		productID string
		quantity  int
		unitPrice string
		discount  string
	}{
		{"sin producto", "", 1, "10.00", "0"},
		{"cantidad cero", testProductID, 0, "10.00", "0"},
		{"cantidad negativa", testProductID, -2, "10.00", "0"},
		{"precio negativo", testProductID, 1, "-1.00", "0"},
		{"descuento negativo", testProductID, 1, "10.00", "-0.50"},
		{"descuento mayor al subtotal", testProductID, 1, "10.00", "10.01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := entity.NewSaleItem(tc.productID, "X", tc.quantity,
				decimal.RequireFromString(tc.unitPrice), decimal.RequireFromString(tc.discount))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestNewSale_ContadoQuedaPagada(t *testing.T) {
	items := []entity.SaleItem{
		buildItem(t, 3, "8.99", "0"),
		buildItem(t, 1, "25.50", "2.00"),
	}

	sale, err := entity.NewSale(nil, testUserID, items, decimal.Zero, entity.PaymentCash, "")

	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, sale.PaymentStatus, "pago inmediato nace PAID")
	assert.Nil(t, sale.ClientID, "venta al contado sin cliente es consumidor final")
	// 26.97 + 23.50 = 50.47
	assert.True(t, sale.Subtotal.Equal(decimal.RequireFromString("50.47")),
		"subtotal debe ser la suma de los totales de línea, se obtuvo %s", sale.Subtotal)
	assert.True(t, sale.Total.Equal(sale.Subtotal), "sin descuento global, total = subtotal")
	for i, it := range sale.Items {
		assert.Equal(t, sale.ID, it.SaleID, "la línea %d debe quedar atada a la venta", i)
	}
}

func TestNewSale_DescuentoGlobal(t *testing.T) {
	items := []entity.SaleItem{buildItem(t, 2, "30.00", "0")}

	sale, err := entity.NewSale(nil, testUserID, items,
		decimal.RequireFromString("5.00"), entity.PaymentCard, "cliente frecuente")

	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("55.00")),
		"60.00 − 5.00 debe dar 55.00, se obtuvo %s", sale.Total)
	assert.Equal(t, "cliente frecuente", sale.Notes)
}

func TestNewSale_FiadoQuedaPendiente(t *testing.T) {
	clientID := testClientID
	items := []entity.SaleItem{buildItem(t, 1, "100.00", "0")}

	sale, err := entity.NewSale(&clientID, testUserID, items, decimal.Zero, entity.PaymentStoreCredit, "")

	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, sale.PaymentStatus, "el fiado nace PENDING hasta que se abone")
	require.NotNil(t, sale.ClientID)
	assert.Equal(t, testClientID, *sale.ClientID)
}

func TestNewSale_EntradasInvalidas(t *testing.T) {
	clientID := testClientID
	valid := []entity.SaleItem{buildItem(t, 1, "10.00", "0")}

	cases := []struct {
		name     string
		clientID *string
		userID   string
		items    []entity.SaleItem
		discount string
		method   entity.PaymentMethod
	}{
		{"sin operador", nil, "", valid, "0", entity.PaymentCash},
		{"sin items", nil, testUserID, nil, "0", entity.PaymentCash},
		{"forma de pago desconocida", nil, testUserID, valid, "0", entity.PaymentMethod("BITCOIN")},
		{"fiado sin cliente", nil, testUserID, valid, "0", entity.PaymentStoreCredit},
		{"descuento negativo", &clientID, testUserID, valid, "-1.00", entity.PaymentCash},
		{"descuento mayor al subtotal", nil, testUserID, valid, "10.01", entity.PaymentCash},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := entity.NewSale(tc.clientID, tc.userID, tc.items,
				decimal.RequireFromString(tc.discount), tc.method, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSale_IsCancelled(t *testing.T) {
	items := []entity.SaleItem{buildItem(t, 1, "10.00", "0")}
	sale, err := entity.NewSale(nil, testUserID, items, decimal.Zero, entity.PaymentCash, "")
	require.NoError(t, err)

	assert.False(t, sale.IsCancelled())
	sale.PaymentStatus = entity.StatusCancelled
	assert.True(t, sale.IsCancelled())
}

func TestMovementType_Direction(t *testing.T) {
	assert.Equal(t, 1, entity.MovementEntry.Direction(), "ENTRY suma stock")
	assert.Equal(t, 1, entity.MovementReturn.Direction(), "RETURN devuelve stock")
	assert.Equal(t, -1, entity.MovementExit.Direction(), "EXIT descuenta stock")
	assert.Equal(t, -1, entity.MovementLoss.Direction(), "LOSS descuenta stock")
	assert.Equal(t, 0, entity.MovementAdjustment.Direction(), "ADJUSTMENT se resuelve contra el conteo")
}
