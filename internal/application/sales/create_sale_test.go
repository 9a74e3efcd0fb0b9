package sales_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfvaldes/ventapro-api/internal/application/dto"
	"github.com/jfvaldes/ventapro-api/internal/application/sales"
	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/infrastructure/memory"
	"github.com/jfvaldes/ventapro-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del flujo de venta contra el almacén en memoria, que replica las
// guardas del esquema PostgreSQL (stock no negativo, deuda acotada al límite,
// rollback transaccional). Lo que se verifica acá es el contrato del caso de
// uso, no el motor de persistencia.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testOperadorID = "00000000-0000-0000-0000-000000000001"
	testCafeID     = "00000000-0000-0000-0000-000000000101"
	testArrozID    = "00000000-0000-0000-0000-000000000102"
	testClienteID  = "00000000-0000-0000-0000-000000000201"
)

// saleFixture arma el almacén en memoria con los casos de uso de venta ya
// cableados, igual que lo hace main cuando no hay base de datos.
type saleFixture struct {
	products  *memory.ProductRepo
	clients   *memory.ClientRepo
	saleRepo  *memory.SaleRepo
	movements *memory.StockMovementRepo
	create    *sales.CreateSaleUseCase
	cancel    *sales.CancelSaleUseCase
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	f := &saleFixture{
		products:  memory.NewProductRepository(store),
		clients:   memory.NewClientRepository(store),
		saleRepo:  memory.NewSaleRepository(store),
		movements: memory.NewStockMovementRepository(store),
	}
	f.create = sales.NewCreateSaleUseCase(runner, f.products, f.clients)
	f.cancel = sales.NewCancelSaleUseCase(runner, logger.Nop())
	return f
}

func (f *saleFixture) seedProduct(t *testing.T, id, name, price string, quantity int) {
	t.Helper()
	err := f.products.Create(&entity.Product{
		ID:          id,
		Name:        name,
		SalePrice:   decimal.RequireFromString(price),
		CostPrice:   decimal.RequireFromString(price).Div(decimal.NewFromInt(2)),
		Quantity:    quantity,
		MinQuantity: 1,
		IsActive:    true,
	})
	require.NoError(t, err, "sembrar producto %s", name)
}

func (f *saleFixture) seedClient(t *testing.T, id, name, creditLimit, currentDebt string) {
	t.Helper()
	err := f.clients.Create(&entity.Client{
		ID:          id,
		Name:        name,
		CreditLimit: decimal.RequireFromString(creditLimit),
		IsActive:    true,
	})
	require.NoError(t, err, "sembrar cliente %s", name)
	debt := decimal.RequireFromString(currentDebt)
	if debt.IsPositive() {
		require.NoError(t, f.clients.AddDebt(id, debt), "sembrar deuda de %s", name)
	}
}

func (f *saleFixture) productQuantity(t *testing.T, id string) int {
	t.Helper()
	p, err := f.products.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p, "el producto %s debe existir", id)
	return p.Quantity
}

func (f *saleFixture) clientDebt(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	c, err := f.clients.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, c, "el cliente %s debe existir", id)
	return c.CurrentDebt
}

func (f *saleFixture) movementsOf(t *testing.T, productID string) []*entity.StockMovement {
	t.Helper()
	list, err := f.movements.ListByProduct(productID, nil, nil, 50, 0)
	require.NoError(t, err)
	return list
}

func (f *saleFixture) allSales(t *testing.T) []*entity.Sale {
	t.Helper()
	list, err := f.saleRepo.List("", nil, nil, 50, 0)
	require.NoError(t, err)
	return list
}

func TestCreateSale_ContadoDescuentaStockYRegistraSalida(t *testing.T) {
	f := newSaleFixture(t)
	f.seedProduct(t, testCafeID, "Café molido 500g", "8.99", 10)

	resp, err := f.create.Create(context.Background(), testOperadorID, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: testCafeID, Quantity: 3}},
		PaymentMethod: "CASH",
	})

	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.PaymentStatus, "pago inmediato queda PAID")
	assert.Equal(t, testOperadorID, resp.UserID)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("26.97")),
		"3 × 8.99 debe totalizar 26.97, se obtuvo %s", resp.Total)

	// Caso 1: el stock baja exactamente lo vendido
	assert.Equal(t, 7, f.productQuantity(t, testCafeID), "10 − 3 = 7")

	// Caso 2: queda un EXIT en el historial, ligado a la venta
	movs := f.movementsOf(t, testCafeID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementExit, movs[0].Type)
	assert.Equal(t, 3, movs[0].Quantity)
	assert.Equal(t, "Venta POS", movs[0].Reason)
	assert.Equal(t, resp.ID, movs[0].Reference, "el movimiento referencia la venta")
	assert.Equal(t, testOperadorID, movs[0].CreatedBy)
	assert.True(t, movs[0].UnitPrice.Equal(decimal.RequireFromString("8.99")),
		"el movimiento congela el precio de venta")
}

func TestCreateSale_VariasLineas(t *testing.T) {
	f := newSaleFixture(t)
	f.seedProduct(t, testCafeID, "Café molido 500g", "8.99", 10)
	f.seedProduct(t, testArrozID, "Arroz 1kg", "2.50", 20)

	resp, err := f.create.Create(context.Background(), testOperadorID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: testCafeID, Quantity: 2},
			{ProductID: testArrozID, Quantity: 4},
		},
		PaymentMethod: "CARD",
	})

	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	// 2×8.99 + 4×2.50 = 17.98 + 10.00 = 27.98
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("27.98")),
		"total esperado 27.98, se obtuvo %s", resp.Total)
	assert.Equal(t, 8, f.productQuantity(t, testCafeID))
	assert.Equal(t, 16, f.productQuantity(t, testArrozID))
	assert.Len(t, f.movementsOf(t, testCafeID), 1)
	assert.Len(t, f.movementsOf(t, testArrozID), 1)
}

func TestCreateSale_FiadoCargaDeudaYQuedaPendiente(t *testing.T) {
	f := newSaleFixture(t)
	f.seedProduct(t, testCafeID, "Café molido 500g", "50.00", 10)
	f.seedClient(t, testClienteID, "María Pérez", "500.00", "0")
	clientID := testClienteID

	resp, err := f.create.Create(context.Background(), testOperadorID, dto.CreateSaleRequest{
		ClientID:      &clientID,
		Items:         []dto.SaleItemRequest{{ProductID: testCafeID, Quantity: 2}},
		PaymentMethod: "STORE_CREDIT",
	})

	require.NoError(t, err)
	assert.Equal(t, "PENDING", resp.PaymentStatus, "el fiado queda PENDING")
	assert.True(t, f.clientDebt(t, testClienteID).Equal(decimal.RequireFromString("100.00")),
		"la deuda debe subir por el total de la venta")
	assert.Equal(t, 8, f.productQuantity(t, testCafeID), "el fiado también descuenta stock")
}

func TestCreateSale_FiadoExcedeLimite_NoDejaRastro(t *testing.T) {
	f := newSaleFixture(t)
	f.seedProduct(t, testCafeID, "Café molido 500g", "60.00", 10)
	f.seedClient(t, testClienteID, "María Pérez", "500.00", "450.00")
	clientID := testClienteID

	// 450 + 60 = 510 > 500: se rechaza antes de escribir nada
	_, err := f.create.Create(context.Background(), testOperadorID, dto.CreateSaleRequest{
		ClientID:      &clientID,
		Items:         []dto.SaleItemRequest{{ProductID: testCafeID, Quantity: 1}},
		PaymentMethod: "STORE_CREDIT",
	})

	require.Error(t, err)
	var credErr *domain.CreditLimitExceededError
	require.ErrorAs(t, err, &credErr, "debe ser el error tipado de crédito")
	assert.ErrorIs(t, err, domain.ErrCreditLimitExceeded)
	assert.Equal(t, "María Pérez", credErr.ClientName)
	assert.True(t, credErr.CreditLimit.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, credErr.AttemptedDebt.Equal(decimal.RequireFromString("510.00")),
		"la deuda proyectada reportada debe ser 510, se obtuvo %s", credErr.AttemptedDebt)

	// Sin efectos: ni stock, ni deuda, ni venta, ni movimientos
	assert.Equal(t, 10, f.productQuantity(t, testCafeID))
	assert.True(t, f.clientDebt(t, testClienteID).Equal(decimal.RequireFromString("450.00")))
	assert.Empty(t, f.allSales(t))
	assert.Empty(t, f.movementsOf(t, testCafeID))
}

func TestCreateSale_StockInsuficiente(t *testing.T) {
	f := newSaleFixture(t)
	f.seedProduct(t, testCafeID, "Café molido 500g", "8.99", 2)

	_, err := f.create.Create(context.Background(), testOperadorID, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: testCafeID, Quantity: 3}},
		PaymentMethod: "CASH",
	})

	require.Error(t, err)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "Café molido 500g", stockErr.ProductName)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 2, f.productQuantity(t, testCafeID), "el stock no se toca")
}

func TestCreateSale_ProductoInactivoRechazado(t *testing.T) {
	f := newSaleFixture(t)
	require.NoError(t, f.products.Create(&entity.Product{
		ID:        testCafeID,
		Name:      "Café descontinuado",
		SalePrice: decimal.RequireFromString("8.99"),
		Quantity:  10,
		IsActive:  false,
	}))

	_, err := f.create.Create(context.Background(), testOperadorID, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: testCafeID, Quantity: 1}},
		PaymentMethod: "CASH",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInactiveProduct)
}

func TestCreateSale_EntradasInvalidas(t *testing.T) {
	f := newSaleFixture(t)
	f.seedProduct(t, testCafeID, "Café molido 500g", "8.99", 10)
	inexistente := "00000000-0000-0000-0000-0000000000ff"

	cases := []struct {
		name    string
		in      dto.CreateSaleRequest
		wantErr error
	}{
		{
			"sin items",
			dto.CreateSaleRequest{PaymentMethod: "CASH"},
			domain.ErrInvalidInput,
		},
		{
			"método desconocido",
			dto.CreateSaleRequest{
				Items:         []dto.SaleItemRequest{{ProductID: testCafeID, Quantity: 1}},
				PaymentMethod: "CHEQUE",
			},
			domain.ErrInvalidInput,
		},
		{
			"fiado sin cliente",
			dto.CreateSaleRequest{
				Items:         []dto.SaleItemRequest{{ProductID: testCafeID, Quantity: 1}},
				PaymentMethod: "STORE_CREDIT",
			},
			domain.ErrInvalidInput,
		},
		{
			"cliente inexistente",
			dto.CreateSaleRequest{
				ClientID:      &inexistente,
				Items:         []dto.SaleItemRequest{{ProductID: testCafeID, Quantity: 1}},
				PaymentMethod: "CASH",
			},
			domain.ErrNotFound,
		},
		{
			"producto inexistente",
			dto.CreateSaleRequest{
				Items:         []dto.SaleItemRequest{{ProductID: inexistente, Quantity: 1}},
				PaymentMethod: "CASH",
			},
			domain.ErrNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.create.Create(context.Background(), testOperadorID, tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreateSale_FalloEnSegundaLinea_RevierteTodo(t *testing.T) {
	f := newSaleFixture(t)
	f.seedProduct(t, testCafeID, "Café molido 500g", "8.99", 5)

	// Dos líneas del mismo producto: cada una pasa el chequeo preliminar
	// (3 ≤ 5) pero la segunda choca con la guarda dentro de la transacción
	// (2 − 3 < 0). Todo lo escrito por la primera debe revertirse.
	_, err := f.create.Create(context.Background(), testOperadorID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: testCafeID, Quantity: 3},
			{ProductID: testCafeID, Quantity: 3},
		},
		PaymentMethod: "CASH",
	})

	require.Error(t, err)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available, "el error reporta el stock al momento del fallo")
	assert.Equal(t, 3, stockErr.Requested)

	assert.Equal(t, 5, f.productQuantity(t, testCafeID), "el descuento de la primera línea se revierte")
	assert.Empty(t, f.movementsOf(t, testCafeID), "el movimiento de la primera línea se revierte")
	assert.Empty(t, f.allSales(t), "la venta no queda persistida")
}

func TestCreateSale_Concurrencia_SoloUnaGana(t *testing.T) {
	f := newSaleFixture(t)
	f.seedProduct(t, testCafeID, "Café molido 500g", "8.99", 5)

	// Dos cajas venden 3 unidades a la vez con stock 5: exactamente una
	// debe ganar y la otra recibir stock insuficiente.
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.create.Create(context.Background(), testOperadorID, dto.CreateSaleRequest{
				Items:         []dto.SaleItemRequest{{ProductID: testCafeID, Quantity: 3}},
				PaymentMethod: "CASH",
			})
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInsufficientStock, "la venta perdedora falla por stock")
	}
	assert.Equal(t, 1, okCount, "exactamente una venta debe completarse")
	assert.Equal(t, 2, f.productQuantity(t, testCafeID), "solo la ganadora descontó stock")
	assert.Len(t, f.movementsOf(t, testCafeID), 1, "solo la ganadora dejó movimiento")
	assert.Len(t, f.allSales(t), 1)
}
