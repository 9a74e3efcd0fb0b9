package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfvaldes/ventapro-api/internal/application/dto"
	"github.com/jfvaldes/ventapro-api/internal/application/inventory"
	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de movimientos manuales de stock. ADJUSTMENT recibe el conteo físico
// de la góndola y el sistema calcula la diferencia; el resto de los tipos
// mueve la cantidad pedida según su dirección.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testBodegueroID = "00000000-0000-0000-0000-000000000001"
	testHarinaID    = "00000000-0000-0000-0000-000000000301"
)

type invFixture struct {
	products  *memory.ProductRepo
	movements *memory.StockMovementRepo
	register  *inventory.RegisterMovementUseCase
	queries   *inventory.InventoryQueryUseCase
}

func newInvFixture(t *testing.T) *invFixture {
	t.Helper()
	store := memory.NewStore()
	f := &invFixture{
		products:  memory.NewProductRepository(store),
		movements: memory.NewStockMovementRepository(store),
	}
	f.register = inventory.NewRegisterMovementUseCase(memory.NewTxRunner(store), f.products)
	f.queries = inventory.NewInventoryQueryUseCase(f.products, f.movements)
	return f
}

func (f *invFixture) seedProduct(t *testing.T, id, name string, quantity, minQuantity int, active bool) {
	t.Helper()
	err := f.products.Create(&entity.Product{
		ID:          id,
		Name:        name,
		SalePrice:   decimal.RequireFromString("4.50"),
		Quantity:    quantity,
		MinQuantity: minQuantity,
		IsActive:    active,
	})
	require.NoError(t, err, "sembrar producto %s", name)
}

func (f *invFixture) productQuantity(t *testing.T, id string) int {
	t.Helper()
	p, err := f.products.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func (f *invFixture) historyLen(t *testing.T, id string) int {
	t.Helper()
	list, err := f.movements.ListByProduct(id, nil, nil, 50, 0)
	require.NoError(t, err)
	return len(list)
}

func TestRegisterMovement_EntradaSumaStock(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct(t, testHarinaID, "Harina 1kg", 10, 3, true)

	resp, err := f.register.Register(context.Background(), testBodegueroID, dto.RegisterMovementRequest{
		ProductID: testHarinaID,
		Type:      "ENTRY",
		Quantity:  5,
		Reason:    "Compra a proveedor",
		UnitPrice: decimal.RequireFromString("6.00"),
	})

	require.NoError(t, err)
	assert.Equal(t, 15, f.productQuantity(t, testHarinaID), "10 + 5 = 15")
	assert.Equal(t, "ENTRY", resp.Type)
	assert.Equal(t, 5, resp.Quantity)
	assert.Equal(t, "Compra a proveedor", resp.Reason)
	assert.Equal(t, testBodegueroID, resp.CreatedBy)
	assert.True(t, resp.TotalPrice.Equal(decimal.RequireFromString("30.00")),
		"5 × 6.00 debe dar 30.00, se obtuvo %s", resp.TotalPrice)
}

func TestRegisterMovement_EntradaRecalculaCostoPromedio(t *testing.T) {
	f := newInvFixture(t)
	err := f.products.Create(&entity.Product{
		ID:        testHarinaID,
		Name:      "Harina 1kg",
		SalePrice: decimal.RequireFromString("9.90"),
		CostPrice: decimal.RequireFromString("4.00"),
		Quantity:  10,
		IsActive:  true,
	})
	require.NoError(t, err)

	_, err = f.register.Register(context.Background(), testBodegueroID, dto.RegisterMovementRequest{
		ProductID: testHarinaID,
		Type:      "ENTRY",
		Quantity:  5,
		Reason:    "Compra a proveedor",
		UnitPrice: decimal.RequireFromString("7.00"),
	})

	require.NoError(t, err)
	p, err := f.products.GetByID(testHarinaID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 15, p.Quantity)
	assert.True(t, p.CostPrice.Equal(decimal.RequireFromString("5.00")),
		"(10×4.00 + 5×7.00) / 15 debe dar 5.00, se obtuvo %s", p.CostPrice)
}

func TestRegisterMovement_EntradaSinPrecioConservaCosto(t *testing.T) {
	f := newInvFixture(t)
	err := f.products.Create(&entity.Product{
		ID:        testHarinaID,
		Name:      "Harina 1kg",
		SalePrice: decimal.RequireFromString("9.90"),
		CostPrice: decimal.RequireFromString("4.00"),
		Quantity:  10,
		IsActive:  true,
	})
	require.NoError(t, err)

	_, err = f.register.Register(context.Background(), testBodegueroID, dto.RegisterMovementRequest{
		ProductID: testHarinaID,
		Type:      "ENTRY",
		Quantity:  5,
		Reason:    "Devolución de bodega",
	})

	require.NoError(t, err)
	p, err := f.products.GetByID(testHarinaID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.CostPrice.Equal(decimal.RequireFromString("4.00")),
		"sin precio de compra el costo promedio no cambia")
}

func TestRegisterMovement_SalidaManualDescuentaStock(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct(t, testHarinaID, "Harina 1kg", 10, 3, true)

	resp, err := f.register.Register(context.Background(), testBodegueroID, dto.RegisterMovementRequest{
		ProductID: testHarinaID,
		Type:      "EXIT",
		Quantity:  4,
		Reason:    "Retiro para consumo interno",
	})

	require.NoError(t, err)
	assert.Equal(t, 6, f.productQuantity(t, testHarinaID))
	assert.Equal(t, "EXIT", resp.Type)
}

func TestRegisterMovement_MermaDescuentaStock(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct(t, testHarinaID, "Harina 1kg", 10, 3, true)

	resp, err := f.register.Register(context.Background(), testBodegueroID, dto.RegisterMovementRequest{
		ProductID: testHarinaID,
		Type:      "LOSS",
		Quantity:  2,
		Reason:    "Bolsas rotas",
	})

	require.NoError(t, err)
	assert.Equal(t, 8, f.productQuantity(t, testHarinaID))
	assert.Equal(t, "LOSS", resp.Type)
}

func TestRegisterMovement_SalidaSinStock_NoDejaMovimiento(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct(t, testHarinaID, "Harina 1kg", 10, 3, true)

	_, err := f.register.Register(context.Background(), testBodegueroID, dto.RegisterMovementRequest{
		ProductID: testHarinaID,
		Type:      "EXIT",
		Quantity:  11,
	})

	require.Error(t, err)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 10, stockErr.Available)
	assert.Equal(t, 11, stockErr.Requested)
	assert.Equal(t, 10, f.productQuantity(t, testHarinaID), "el stock no se toca")
	assert.Zero(t, f.historyLen(t, testHarinaID), "el historial queda vacío")
}

func TestRegisterMovement_AjustePorConteo(t *testing.T) {
	cases := []struct {
		name         string
		count        int
		reason       string
		wantStock    int
		wantQuantity int
		wantReason   string
	}{
		{
			name:         "conteo por debajo del sistema",
			count:        7,
			wantStock:    7,
			wantQuantity: 3,
			wantReason:   "Ajuste de inventario (conteo físico: 7)",
		},
		{
			name:         "conteo por encima del sistema",
			count:        15,
			wantStock:    15,
			wantQuantity: 5,
			wantReason:   "Ajuste de inventario (conteo físico: 15)",
		},
		{
			name:         "motivo propio conserva el conteo",
			count:        4,
			reason:       "Conteo anual",
			wantStock:    4,
			wantQuantity: 6,
			wantReason:   "Conteo anual (conteo físico: 4)",
		},
		{
			name:         "conteo en cero vacía la góndola",
			count:        0,
			wantStock:    0,
			wantQuantity: 10,
			wantReason:   "Ajuste de inventario (conteo físico: 0)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newInvFixture(t)
			f.seedProduct(t, testHarinaID, "Harina 1kg", 10, 3, true)

			resp, err := f.register.Register(context.Background(), testBodegueroID, dto.RegisterMovementRequest{
				ProductID: testHarinaID,
				Type:      "ADJUSTMENT",
				Quantity:  tc.count,
				Reason:    tc.reason,
			})

			require.NoError(t, err)
			assert.Equal(t, tc.wantStock, f.productQuantity(t, testHarinaID),
				"el stock queda en el conteo físico")
			assert.Equal(t, "ADJUSTMENT", resp.Type)
			assert.Equal(t, tc.wantQuantity, resp.Quantity,
				"el movimiento guarda la diferencia absoluta")
			assert.Equal(t, tc.wantReason, resp.Reason)
		})
	}
}

func TestRegisterMovement_ConteoIgualAlStockRechazado(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct(t, testHarinaID, "Harina 1kg", 10, 3, true)

	_, err := f.register.Register(context.Background(), testBodegueroID, dto.RegisterMovementRequest{
		ProductID: testHarinaID,
		Type:      "ADJUSTMENT",
		Quantity:  10,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.historyLen(t, testHarinaID), "sin diferencia no hay movimiento")
}

func TestRegisterMovement_RetornoManualRechazado(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct(t, testHarinaID, "Harina 1kg", 10, 3, true)

	_, err := f.register.Register(context.Background(), testBodegueroID, dto.RegisterMovementRequest{
		ProductID: testHarinaID,
		Type:      "RETURN",
		Quantity:  1,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, "RETURN")
}

func TestRegisterMovement_EntradasInvalidas(t *testing.T) {
	f := newInvFixture(t)
	f.seedProduct(t, testHarinaID, "Harina 1kg", 10, 3, true)

	cases := []struct {
		name    string
		in      dto.RegisterMovementRequest
		wantErr error
	}{
		{
			"tipo desconocido",
			dto.RegisterMovementRequest{ProductID: testHarinaID, Type: "TRANSFER", Quantity: 1},
			domain.ErrInvalidInput,
		},
		{
			"entrada con cantidad cero",
			dto.RegisterMovementRequest{ProductID: testHarinaID, Type: "ENTRY", Quantity: 0},
			domain.ErrInvalidInput,
		},
		{
			"salida con cantidad negativa",
			dto.RegisterMovementRequest{ProductID: testHarinaID, Type: "EXIT", Quantity: -3},
			domain.ErrInvalidInput,
		},
		{
			"conteo negativo",
			dto.RegisterMovementRequest{ProductID: testHarinaID, Type: "ADJUSTMENT", Quantity: -1},
			domain.ErrInvalidInput,
		},
		{
			"precio unitario negativo",
			dto.RegisterMovementRequest{
				ProductID: testHarinaID,
				Type:      "ENTRY",
				Quantity:  1,
				UnitPrice: decimal.RequireFromString("-2.00"),
			},
			domain.ErrInvalidInput,
		},
		{
			"producto inexistente",
			dto.RegisterMovementRequest{
				ProductID: "00000000-0000-0000-0000-0000000000ff",
				Type:      "ENTRY",
				Quantity:  1,
			},
			domain.ErrNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.register.Register(context.Background(), testBodegueroID, tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
