package pdf_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/infrastructure/pdf"
	"github.com/jfvaldes/ventapro-api/pkg/config"
)

var testStore = config.StoreConfig{
	Name:    "Almacén Don Pepe",
	TaxID:   "76.543.210-9",
	Address: "Av. Siempre Viva 742",
	Phone:   "+56 9 1234 5678",
}

func buildSale(t *testing.T, clientID *string) *entity.Sale {
	t.Helper()
	item, err := entity.NewSaleItem("00000000-0000-0000-0000-000000000101", "Café molido 500g",
		3, decimal.RequireFromString("8.99"), decimal.Zero)
	require.NoError(t, err)

	sale, err := entity.NewSale(clientID, "00000000-0000-0000-0000-000000000001",
		[]entity.SaleItem{*item}, decimal.Zero, entity.PaymentCash, "Entrega a domicilio")
	require.NoError(t, err)
	return sale
}

func TestReceiptGenerator_GeneraPDFValido(t *testing.T) {
	clientID := "00000000-0000-0000-0000-000000000201"
	sale := buildSale(t, &clientID)
	client := &entity.Client{ID: clientID, Name: "María Pérez", TaxID: "12.345.678-5"}

	out, err := pdf.NewReceiptGenerator(testStore).Generate(sale, client)

	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe empezar con la firma PDF")
}

func TestReceiptGenerator_ConsumidorFinal(t *testing.T) {
	sale := buildSale(t, nil)

	out, err := pdf.NewReceiptGenerator(testStore).Generate(sale, nil)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
