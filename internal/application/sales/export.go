package sales

import (
	"fmt"

	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
)

// SaleExportUseCase genera los documentos de una venta: comprobante PDF y
// XML fiscal simplificado (sin firma).
type SaleExportUseCase struct {
	saleRepo   repository.SaleRepository
	clientRepo repository.ClientRepository
	receipts   ReceiptGenerator
	fiscal     FiscalExporter
}

// NewSaleExportUseCase construye el caso de uso.
func NewSaleExportUseCase(
	saleRepo repository.SaleRepository,
	clientRepo repository.ClientRepository,
	receipts ReceiptGenerator,
	fiscal FiscalExporter,
) *SaleExportUseCase {
	return &SaleExportUseCase{
		saleRepo:   saleRepo,
		clientRepo: clientRepo,
		receipts:   receipts,
		fiscal:     fiscal,
	}
}

// Receipt genera el comprobante PDF de la venta.
func (uc *SaleExportUseCase) Receipt(saleID string) ([]byte, error) {
	sale, client, err := uc.load(saleID)
	if err != nil {
		return nil, err
	}
	return uc.receipts.Generate(sale, client)
}

// FiscalXML genera el XML fiscal de la venta.
func (uc *SaleExportUseCase) FiscalXML(saleID string) ([]byte, error) {
	sale, client, err := uc.load(saleID)
	if err != nil {
		return nil, err
	}
	return uc.fiscal.Export(sale, client)
}

func (uc *SaleExportUseCase) load(saleID string) (*entity.Sale, *entity.Client, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, saleID)
	}
	var client *entity.Client
	if sale.ClientID != nil {
		client, err = uc.clientRepo.GetByID(*sale.ClientID)
		if err != nil {
			return nil, nil, err
		}
	}
	return sale, client, nil
}
