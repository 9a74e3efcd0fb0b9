package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/jfvaldes/ventapro-api/internal/application/dto"
	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
	"github.com/jfvaldes/ventapro-api/pkg/logger"
	"github.com/jfvaldes/ventapro-api/pkg/metrics"
)

// CancelSaleUseCase revierte una venta: repone stock, registra movimientos
// RETURN, descarga la deuda si fue a crédito y marca la venta CANCELLED.
type CancelSaleUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewCancelSaleUseCase construye el caso de uso.
func NewCancelSaleUseCase(txRunner TxRunner, log *logger.Logger) *CancelSaleUseCase {
	return &CancelSaleUseCase{txRunner: txRunner, log: log}
}

// Cancel ejecuta la cancelación completa en una transacción. La venta se
// bloquea con FOR UPDATE para que dos cancelaciones concurrentes no repongan
// stock dos veces. Si un producto de la venta ya no existe, esa línea se
// salta con un warning y la cancelación continúa.
func (uc *CancelSaleUseCase) Cancel(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	var sale *entity.Sale
	var returned int

	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		clientRepo repository.ClientRepository,
	) error {
		var err error
		sale, err = saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("%w: venta %s", domain.ErrNotFound, saleID)
		}
		if sale.IsCancelled() {
			return fmt.Errorf("%w: la venta %s ya está cancelada", domain.ErrInvalidState, saleID)
		}

		for i := range sale.Items {
			item := &sale.Items[i]
			product, err := productRepo.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				uc.log.Warn().
					Str("sale_id", sale.ID).
					Str("product_id", item.ProductID).
					Msg("producto eliminado, se omite la reposición de esa línea")
				continue
			}
			if err := productRepo.AdjustQuantity(item.ProductID, item.Quantity); err != nil {
				return err
			}
			movement := &entity.StockMovement{
				ProductID:  item.ProductID,
				Type:       entity.MovementReturn,
				Quantity:   item.Quantity,
				Reason:     "Cancelación de venta",
				Reference:  sale.ID,
				UnitPrice:  item.UnitPrice,
				TotalPrice: item.Total,
				CreatedAt:  time.Now(),
			}
			if err := movementRepo.Create(movement); err != nil {
				return err
			}
			returned++
		}

		if sale.PaymentMethod == entity.PaymentStoreCredit && sale.ClientID != nil {
			if err := clientRepo.ReduceDebt(*sale.ClientID, sale.Total); err != nil {
				return err
			}
		}

		if err := saleRepo.MarkCancelled(sale.ID); err != nil {
			return err
		}
		sale.PaymentStatus = entity.StatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SalesCancelled.Inc()
	if returned > 0 {
		metrics.StockMovements.WithLabelValues(string(entity.MovementReturn)).Add(float64(returned))
	}
	return toSaleResponse(sale), nil
}
