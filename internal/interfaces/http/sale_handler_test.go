package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfvaldes/ventapro-api/internal/application/credit"
	"github.com/jfvaldes/ventapro-api/internal/application/dto"
	"github.com/jfvaldes/ventapro-api/internal/application/inventory"
	"github.com/jfvaldes/ventapro-api/internal/application/sales"
	"github.com/jfvaldes/ventapro-api/internal/application/usecase"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/infrastructure/fiscal"
	"github.com/jfvaldes/ventapro-api/internal/infrastructure/memory"
	infrapdf "github.com/jfvaldes/ventapro-api/internal/infrastructure/pdf"
	apphttp "github.com/jfvaldes/ventapro-api/internal/interfaces/http"
	"github.com/jfvaldes/ventapro-api/pkg/config"
	"github.com/jfvaldes/ventapro-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la API de ventas de punta a punta: Fiber + casos de uso + almacén
// en memoria, el mismo cableado que usa main cuando no hay base de datos.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testOperadorID = "00000000-0000-0000-0000-000000000001"
	testCafeID     = "00000000-0000-0000-0000-000000000101"
	testClienteID  = "00000000-0000-0000-0000-000000000201"
)

// testEnv aplicación Fiber con todas las rutas y acceso directo a los repos
// para sembrar y verificar estado.
type testEnv struct {
	app      *fiber.App
	products *memory.ProductRepo
	clients  *memory.ClientRepo
}

func buildTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)

	productRepo := memory.NewProductRepository(store)
	clientRepo := memory.NewClientRepository(store)
	saleRepo := memory.NewSaleRepository(store)
	movementRepo := memory.NewStockMovementRepository(store)

	storeCfg := config.StoreConfig{Name: "Tienda Test", TaxID: "76.543.210-9"}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:  usecase.NewProductUseCase(productRepo),
		CategoryUC: usecase.NewCategoryUseCase(memory.NewCategoryRepository(store)),
		SupplierUC: usecase.NewSupplierUseCase(memory.NewSupplierRepository(store)),
		ClientUC:   usecase.NewClientUseCase(clientRepo),
		UserUC:     usecase.NewUserUseCase(memory.NewUserRepository(store)),
		AccountUC:  usecase.NewCashAccountUseCase(memory.NewCashAccountRepository(store)),

		CreateSale:  sales.NewCreateSaleUseCase(runner, productRepo, clientRepo),
		CancelSale:  sales.NewCancelSaleUseCase(runner, logger.Nop()),
		SaleQueries: sales.NewSaleQueryUseCase(saleRepo),
		SaleExport: sales.NewSaleExportUseCase(saleRepo, clientRepo,
			infrapdf.NewReceiptGenerator(storeCfg), fiscal.NewExporter(storeCfg)),

		RegisterMovement: inventory.NewRegisterMovementUseCase(runner, productRepo),
		InventoryQueries: inventory.NewInventoryQueryUseCase(productRepo, movementRepo),

		Payments: credit.NewPaymentUseCase(clientRepo),
	})

	return &testEnv{app: app, products: productRepo, clients: clientRepo}
}

func (e *testEnv) seedProduct(t *testing.T, id, name, price string, quantity int) {
	t.Helper()
	err := e.products.Create(&entity.Product{
		ID:          id,
		Name:        name,
		SalePrice:   decimal.RequireFromString(price),
		Quantity:    quantity,
		MinQuantity: 1,
		IsActive:    true,
	})
	require.NoError(t, err)
}

// doJSON ejecuta una request con body JSON y decodifica la respuesta en out.
func (e *testEnv) doJSON(t *testing.T, method, path, body string, out any) int {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out),
			"%s %s debe responder JSON", method, path)
	}
	return resp.StatusCode
}

func saleBody(productID string, quantity int, method string) string {
	return fmt.Sprintf(`{
		"user_id": %q,
		"items": [{"product_id": %q, "quantity": %d}],
		"payment_method": %q
	}`, testOperadorID, productID, quantity, method)
}

func TestSalesAPI_VentaYCancelacion(t *testing.T) {
	env := buildTestEnv(t)
	env.seedProduct(t, testCafeID, "Café molido 500g", "8.99", 10)

	// Caso 1: POST /api/sales registra la venta → 201
	var created dto.SaleResponse
	status := env.doJSON(t, fiber.MethodPost, "/api/sales/",
		saleBody(testCafeID, 3, "CASH"), &created)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "PAID", created.PaymentStatus)
	assert.True(t, created.Total.Equal(decimal.RequireFromString("26.97")),
		"total esperado 26.97, se obtuvo %s", created.Total)

	p, err := env.products.GetByID(testCafeID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 7, p.Quantity)

	// Caso 2: GET /api/sales/:id devuelve la venta
	var fetched dto.SaleResponse
	status = env.doJSON(t, fiber.MethodGet, "/api/sales/"+created.ID, "", &fetched)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, created.ID, fetched.ID)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "Café molido 500g", fetched.Items[0].ProductName)

	// Caso 3: POST /api/sales/:id/cancel repone el stock
	var cancelled dto.SaleResponse
	status = env.doJSON(t, fiber.MethodPost, "/api/sales/"+created.ID+"/cancel", "", &cancelled)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "CANCELLED", cancelled.PaymentStatus)

	p, err = env.products.GetByID(testCafeID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 10, p.Quantity, "la cancelación repone el stock")

	// Caso 4: cancelar de nuevo → 422 INVALID_STATE
	var fail dto.ErrorResponse
	status = env.doJSON(t, fiber.MethodPost, "/api/sales/"+created.ID+"/cancel", "", &fail)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "INVALID_STATE", fail.Code)
}

func TestSalesAPI_SinOperador(t *testing.T) {
	env := buildTestEnv(t)
	env.seedProduct(t, testCafeID, "Café molido 500g", "8.99", 10)

	body := fmt.Sprintf(`{"items":[{"product_id": %q, "quantity": 1}], "payment_method": "CASH"}`, testCafeID)
	var fail dto.ErrorResponse
	status := env.doJSON(t, fiber.MethodPost, "/api/sales/", body, &fail)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", fail.Code)
}

func TestSalesAPI_StockInsuficiente(t *testing.T) {
	env := buildTestEnv(t)
	env.seedProduct(t, testCafeID, "Café molido 500g", "8.99", 2)

	var fail dto.ErrorResponse
	status := env.doJSON(t, fiber.MethodPost, "/api/sales/",
		saleBody(testCafeID, 3, "CASH"), &fail)

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", fail.Code)
	assert.Contains(t, fail.Message, "disponible 2", "el mensaje trae el stock real")
}

func TestSalesAPI_CreditoExcedido(t *testing.T) {
	env := buildTestEnv(t)
	env.seedProduct(t, testCafeID, "Café molido 500g", "600.00", 10)
	require.NoError(t, env.clients.Create(&entity.Client{
		ID:          testClienteID,
		Name:        "María Pérez",
		CreditLimit: decimal.RequireFromString("500.00"),
		IsActive:    true,
	}))

	body := fmt.Sprintf(`{
		"user_id": %q,
		"client_id": %q,
		"items": [{"product_id": %q, "quantity": 1}],
		"payment_method": "STORE_CREDIT"
	}`, testOperadorID, testClienteID, testCafeID)

	var fail dto.ErrorResponse
	status := env.doJSON(t, fiber.MethodPost, "/api/sales/", body, &fail)

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "CREDIT_LIMIT_EXCEEDED", fail.Code)
}

func TestSalesAPI_VentaInexistente(t *testing.T) {
	env := buildTestEnv(t)

	var fail dto.ErrorResponse
	status := env.doJSON(t, fiber.MethodGet,
		"/api/sales/00000000-0000-0000-0000-0000000000ff", "", &fail)

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", fail.Code)
}

func TestSalesAPI_ReciboYXML(t *testing.T) {
	env := buildTestEnv(t)
	env.seedProduct(t, testCafeID, "Café molido 500g", "8.99", 10)

	var created dto.SaleResponse
	status := env.doJSON(t, fiber.MethodPost, "/api/sales/",
		saleBody(testCafeID, 1, "CARD"), &created)
	require.Equal(t, fiber.StatusCreated, status)

	// Recibo PDF
	req := httptest.NewRequest(fiber.MethodGet, "/api/sales/"+created.ID+"/receipt", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	pdfBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")), "el recibo debe ser un PDF")

	// XML fiscal
	req = httptest.NewRequest(fiber.MethodGet, "/api/sales/"+created.ID+"/xml", nil)
	resp, err = env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "application/xml")
	xmlBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(xmlBytes), "<Venta", "el cuerpo debe traer el documento de la venta")
}
