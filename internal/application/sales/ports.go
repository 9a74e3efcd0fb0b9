package sales

import (
	"context"

	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repos que toca el flujo de venta. Si fn retorna error, el runner hace
// rollback y la venta no deja rastro: ni stock, ni movimientos, ni deuda.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		clientRepo repository.ClientRepository,
	) error) error
}

// ReceiptGenerator genera el comprobante de venta en PDF.
type ReceiptGenerator interface {
	Generate(sale *entity.Sale, client *entity.Client) ([]byte, error)
}

// FiscalExporter serializa una venta al XML fiscal simplificado.
type FiscalExporter interface {
	Export(sale *entity.Sale, client *entity.Client) ([]byte, error)
}
