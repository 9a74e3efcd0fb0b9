// Package fiscal serializa ventas al XML fiscal simplificado que consume el
// contador. El documento va sin firma; la firma electrónica queda fuera del
// alcance del servicio.
package fiscal

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	appsales "github.com/jfvaldes/ventapro-api/internal/application/sales"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/pkg/config"
)

const nsVenta = "urn:ventapro:venta:v1"

var _ appsales.FiscalExporter = (*Exporter)(nil)

// Exporter implementa sales.FiscalExporter con etree.
type Exporter struct {
	store config.StoreConfig
}

// NewExporter construye el exportador con los datos de la tienda emisora.
func NewExporter(store config.StoreConfig) *Exporter {
	return &Exporter{store: store}
}

// Export genera el documento XML de la venta. client puede ser nil para
// ventas a consumidor final.
func (e *Exporter) Export(sale *entity.Sale, client *entity.Client) ([]byte, error) {
	if sale == nil {
		return nil, fmt.Errorf("fiscal: venta requerida")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Venta")
	root.CreateAttr("xmlns", nsVenta)
	root.CreateAttr("id", sale.ID)

	root.CreateElement("Fecha").SetText(sale.CreatedAt.Format("2006-01-02T15:04:05-07:00"))
	root.CreateElement("MetodoPago").SetText(string(sale.PaymentMethod))
	root.CreateElement("Estado").SetText(string(sale.PaymentStatus))

	emisor := root.CreateElement("Emisor")
	emisor.CreateElement("Nombre").SetText(e.store.Name)
	if e.store.TaxID != "" {
		emisor.CreateElement("RUT").SetText(e.store.TaxID)
	}
	if e.store.Address != "" {
		emisor.CreateElement("Direccion").SetText(e.store.Address)
	}

	receptor := root.CreateElement("Receptor")
	if client != nil {
		receptor.CreateElement("Nombre").SetText(client.Name)
		if client.TaxID != "" {
			receptor.CreateElement("RUT").SetText(client.TaxID)
		}
	} else {
		receptor.CreateElement("Nombre").SetText("Consumidor final")
	}

	lineas := root.CreateElement("Lineas")
	for i, item := range sale.Items {
		linea := lineas.CreateElement("Linea")
		linea.CreateAttr("numero", strconv.Itoa(i+1))
		linea.CreateElement("ProductoID").SetText(item.ProductID)
		linea.CreateElement("Producto").SetText(item.ProductName)
		linea.CreateElement("Cantidad").SetText(strconv.Itoa(item.Quantity))
		linea.CreateElement("PrecioUnitario").SetText(item.UnitPrice.StringFixed(2))
		linea.CreateElement("Descuento").SetText(item.Discount.StringFixed(2))
		linea.CreateElement("Total").SetText(item.Total.StringFixed(2))
	}

	totales := root.CreateElement("Totales")
	totales.CreateElement("Subtotal").SetText(sale.Subtotal.StringFixed(2))
	totales.CreateElement("Descuento").SetText(sale.Discount.StringFixed(2))
	totales.CreateElement("Total").SetText(sale.Total.StringFixed(2))

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("fiscal: serializar venta: %w", err)
	}
	return out, nil
}
