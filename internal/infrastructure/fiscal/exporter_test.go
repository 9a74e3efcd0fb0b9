package fiscal_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/infrastructure/fiscal"
	"github.com/jfvaldes/ventapro-api/pkg/config"
)

var testStore = config.StoreConfig{
	Name:    "Almacén Don Pepe",
	TaxID:   "76.543.210-9",
	Address: "Av. Siempre Viva 742",
}

// buildSale arma una venta de dos líneas con totales conocidos:
// 3×8.99 + (25.50 − 2.00) = 50.47, descuento global 0.47, total 50.00.
func buildSale(t *testing.T, clientID *string, method entity.PaymentMethod) *entity.Sale {
	t.Helper()
	cafe, err := entity.NewSaleItem("00000000-0000-0000-0000-000000000101", "Café molido 500g",
		3, decimal.RequireFromString("8.99"), decimal.Zero)
	require.NoError(t, err)
	yerba, err := entity.NewSaleItem("00000000-0000-0000-0000-000000000102", "Yerba 1kg",
		1, decimal.RequireFromString("25.50"), decimal.RequireFromString("2.00"))
	require.NoError(t, err)

	sale, err := entity.NewSale(clientID, "00000000-0000-0000-0000-000000000001",
		[]entity.SaleItem{*cafe, *yerba}, decimal.RequireFromString("0.47"), method, "")
	require.NoError(t, err)
	return sale
}

// parseXML vuelve a leer el documento emitido y devuelve la raíz.
func parseXML(t *testing.T, out []byte) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out), "el XML emitido debe ser parseable")
	root := doc.Root()
	require.NotNil(t, root)
	return root
}

// textOf busca un elemento por path relativo a root y devuelve su texto.
func textOf(t *testing.T, root *etree.Element, path string) string {
	t.Helper()
	el := root.FindElement(path)
	require.NotNil(t, el, "falta el elemento %s", path)
	return el.Text()
}

func TestExporter_Export_DocumentoCompleto(t *testing.T) {
	clientID := "00000000-0000-0000-0000-000000000201"
	sale := buildSale(t, &clientID, entity.PaymentCash)
	client := &entity.Client{
		ID:    clientID,
		Name:  "María Pérez",
		TaxID: "12.345.678-5",
	}

	out, err := fiscal.NewExporter(testStore).Export(sale, client)
	require.NoError(t, err)

	root := parseXML(t, out)
	assert.Equal(t, "Venta", root.Tag)
	assert.Equal(t, sale.ID, root.SelectAttrValue("id", ""), "el documento lleva el ID de la venta")
	assert.Equal(t, "urn:ventapro:venta:v1", root.SelectAttrValue("xmlns", ""))

	// Emisor y receptor
	assert.Equal(t, "Almacén Don Pepe", textOf(t, root, "Emisor/Nombre"))
	assert.Equal(t, "76.543.210-9", textOf(t, root, "Emisor/RUT"))
	assert.Equal(t, "María Pérez", textOf(t, root, "Receptor/Nombre"))
	assert.Equal(t, "12.345.678-5", textOf(t, root, "Receptor/RUT"))

	// Líneas numeradas con los montos congelados
	lineas := root.FindElements("Lineas/Linea")
	require.Len(t, lineas, 2)
	assert.Equal(t, "1", lineas[0].SelectAttrValue("numero", ""))
	assert.Equal(t, "Café molido 500g", textOf(t, lineas[0], "Producto"))
	assert.Equal(t, "3", textOf(t, lineas[0], "Cantidad"))
	assert.Equal(t, "8.99", textOf(t, lineas[0], "PrecioUnitario"))
	assert.Equal(t, "2", lineas[1].SelectAttrValue("numero", ""))
	assert.Equal(t, "23.50", textOf(t, lineas[1], "Total"))

	// Totales
	assert.Equal(t, "50.47", textOf(t, root, "Totales/Subtotal"))
	assert.Equal(t, "0.47", textOf(t, root, "Totales/Descuento"))
	assert.Equal(t, "50.00", textOf(t, root, "Totales/Total"))
	assert.Equal(t, "CASH", textOf(t, root, "MetodoPago"))
	assert.Equal(t, "PAID", textOf(t, root, "Estado"))
}

func TestExporter_Export_ConsumidorFinal(t *testing.T) {
	sale := buildSale(t, nil, entity.PaymentCash)

	out, err := fiscal.NewExporter(testStore).Export(sale, nil)
	require.NoError(t, err)

	root := parseXML(t, out)
	assert.Equal(t, "Consumidor final", textOf(t, root, "Receptor/Nombre"))
	assert.Nil(t, root.FindElement("Receptor/RUT"), "consumidor final no lleva RUT")
}

func TestExporter_Export_VentaRequerida(t *testing.T) {
	_, err := fiscal.NewExporter(testStore).Export(nil, nil)
	assert.Error(t, err)
}
