package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jfvaldes/ventapro-api/internal/application/dto"
	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	dominventory "github.com/jfvaldes/ventapro-api/internal/domain/inventory"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
	"github.com/jfvaldes/ventapro-api/pkg/metrics"
)

// RegisterMovementUseCase registra movimientos manuales de stock (ENTRY,
// EXIT, ADJUSTMENT, LOSS) de forma transaccional. RETURN queda reservado
// para la cancelación de ventas.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, productRepo: productRepo}
}

// Register valida el movimiento, ajusta el stock con guarda de no-negativos
// y persiste el registro en el historial, todo dentro de una transacción.
// Para ADJUSTMENT, in.Quantity es el conteo físico y el movimiento guarda
// la diferencia absoluta contra el stock actual. Una ENTRY con precio
// unitario positivo recalcula además el costo promedio del producto.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	mtype := entity.MovementType(in.Type)
	if mtype == entity.MovementReturn {
		return nil, fmt.Errorf("%w: RETURN lo genera la cancelación de ventas", domain.ErrInvalidInput)
	}
	if !mtype.IsValid() {
		return nil, fmt.Errorf("%w: tipo de movimiento %q no soportado", domain.ErrInvalidInput, in.Type)
	}
	if mtype != entity.MovementAdjustment && in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if mtype == entity.MovementAdjustment && in.Quantity < 0 {
		return nil, fmt.Errorf("%w: el conteo no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: el precio unitario no puede ser negativo", domain.ErrInvalidInput)
	}

	// Existencia del producto (fuera de la tx, solo lectura)
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}

	var movement *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		quantity := in.Quantity
		reason := in.Reason
		delta := 0

		switch mtype {
		case entity.MovementAdjustment:
			// El conteo se compara contra la fila bloqueada para que dos
			// ajustes concurrentes no pisen el mismo stock.
			locked, err := productRepo.GetForUpdate(in.ProductID)
			if err != nil {
				return err
			}
			if locked == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
			}
			delta = in.Quantity - locked.Quantity
			if delta == 0 {
				return fmt.Errorf("%w: el conteo coincide con el stock actual", domain.ErrInvalidInput)
			}
			quantity = delta
			if quantity < 0 {
				quantity = -quantity
			}
			if reason == "" {
				reason = "Ajuste de inventario"
			}
			reason = fmt.Sprintf("%s (conteo físico: %d)", reason, in.Quantity)
		case entity.MovementEntry:
			delta = in.Quantity
			if in.UnitPrice.IsPositive() {
				locked, err := productRepo.GetForUpdate(in.ProductID)
				if err != nil {
					return err
				}
				if locked == nil {
					return fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
				}
				newCost := dominventory.AverageCost(
					decimal.NewFromInt(int64(locked.Quantity)),
					locked.CostPrice,
					decimal.NewFromInt(int64(in.Quantity)),
					in.UnitPrice,
				)
				if err := productRepo.UpdateCostPrice(in.ProductID, newCost); err != nil {
					return err
				}
			}
		default:
			delta = in.Quantity * mtype.Direction()
		}

		if err := productRepo.AdjustQuantity(in.ProductID, delta); err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				return uc.insufficientStock(productRepo, in.ProductID, quantity)
			}
			return err
		}

		movement = &entity.StockMovement{
			ProductID:  in.ProductID,
			Type:       mtype,
			Quantity:   quantity,
			Reason:     reason,
			UnitPrice:  in.UnitPrice,
			TotalPrice: in.UnitPrice.Mul(decimal.NewFromInt(int64(quantity))),
			CreatedBy:  userID,
			CreatedAt:  time.Now(),
		}
		return movementRepo.Create(movement)
	})
	if err != nil {
		return nil, err
	}

	metrics.StockMovements.WithLabelValues(string(mtype)).Inc()
	return toMovementResponse(movement), nil
}

func (uc *RegisterMovementUseCase) insufficientStock(productRepo repository.ProductRepository, productID string, requested int) error {
	e := &domain.InsufficientStockError{ProductName: productID, Requested: requested}
	if product, err := productRepo.GetByID(productID); err == nil && product != nil {
		e.ProductName = product.Name
		e.Available = product.Quantity
	}
	return e
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       string(m.Type),
		Quantity:   m.Quantity,
		Reason:     m.Reason,
		Reference:  m.Reference,
		UnitPrice:  m.UnitPrice,
		TotalPrice: m.TotalPrice,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
	}
}
