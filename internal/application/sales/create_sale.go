package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/jfvaldes/ventapro-api/internal/application/dto"
	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
	"github.com/jfvaldes/ventapro-api/pkg/metrics"
)

// CreateSaleUseCase registra una venta y descuenta el inventario en una sola
// transacción. La fase de validación lee con los repos del pool; la fase de
// escritura corre completa dentro del TxRunner.
type CreateSaleUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		clientRepo:  clientRepo,
	}
}

// Create valida la venta, la persiste y por cada línea descuenta stock y
// registra el movimiento EXIT. Si el método es STORE_CREDIT también carga la
// deuda del cliente. Cualquier error dentro de la transacción revierte todo.
func (uc *CreateSaleUseCase) Create(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la venta requiere al menos un item", domain.ErrInvalidInput)
	}
	method := entity.PaymentMethod(in.PaymentMethod)
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: método de pago %q no soportado", domain.ErrInvalidInput, in.PaymentMethod)
	}

	// Resolver cliente (si la venta lo trae)
	var client *entity.Client
	if in.ClientID != nil && *in.ClientID != "" {
		var err error
		client, err = uc.clientRepo.GetByID(*in.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, *in.ClientID)
		}
	} else if method == entity.PaymentStoreCredit {
		return nil, fmt.Errorf("%w: venta a crédito requiere un cliente registrado", domain.ErrInvalidInput)
	}

	// Validar productos y congelar nombre y precio (fuera de la tx, solo lectura).
	// El chequeo de stock aquí es preliminar; el definitivo lo hace el UPDATE
	// condicional dentro de la transacción.
	items := make([]entity.SaleItem, 0, len(in.Items))
	for _, line := range in.Items {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, line.ProductID)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: %s", domain.ErrInactiveProduct, product.Name)
		}
		if line.Quantity > product.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductName: product.Name,
				Available:   product.Quantity,
				Requested:   line.Quantity,
			}
		}
		item, err := entity.NewSaleItem(product.ID, product.Name, line.Quantity, product.SalePrice, line.Discount)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	sale, err := entity.NewSale(in.ClientID, userID, items, in.Discount, method, in.Notes)
	if err != nil {
		return nil, err
	}

	// Chequeo de límite de crédito sin efectos: si la deuda proyectada excede
	// el cupo no se escribe nada.
	if method == entity.PaymentStoreCredit {
		projected := client.CurrentDebt.Add(sale.Total)
		if projected.GreaterThan(client.CreditLimit) {
			return nil, &domain.CreditLimitExceededError{
				ClientName:    client.Name,
				CreditLimit:   client.CreditLimit,
				AttemptedDebt: projected,
			}
		}
	}

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
		clientRepo repository.ClientRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		for i := range sale.Items {
			item := &sale.Items[i]
			if err := productRepo.AdjustQuantity(item.ProductID, -item.Quantity); err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					return uc.insufficientStock(productRepo, item)
				}
				return err
			}
			movement := &entity.StockMovement{
				ProductID:  item.ProductID,
				Type:       entity.MovementExit,
				Quantity:   item.Quantity,
				Reason:     "Venta POS",
				Reference:  sale.ID,
				UnitPrice:  item.UnitPrice,
				TotalPrice: item.Total,
				CreatedBy:  userID,
				CreatedAt:  sale.CreatedAt,
			}
			if err := movementRepo.Create(movement); err != nil {
				return err
			}
		}

		if method == entity.PaymentStoreCredit {
			if err := clientRepo.AddDebt(*sale.ClientID, sale.Total); err != nil {
				if errors.Is(err, domain.ErrCreditLimitExceeded) {
					return uc.creditLimitExceeded(clientRepo, *sale.ClientID, sale)
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SalesCreated.Inc()
	metrics.StockMovements.WithLabelValues(string(entity.MovementExit)).Add(float64(len(sale.Items)))
	return toSaleResponse(sale), nil
}

// insufficientStock relee el producto dentro de la tx para armar el error
// con el stock real al momento del fallo.
func (uc *CreateSaleUseCase) insufficientStock(productRepo repository.ProductRepository, item *entity.SaleItem) error {
	available := 0
	name := item.ProductName
	if product, err := productRepo.GetByID(item.ProductID); err == nil && product != nil {
		available = product.Quantity
		name = product.Name
	}
	return &domain.InsufficientStockError{
		ProductName: name,
		Available:   available,
		Requested:   item.Quantity,
	}
}

// creditLimitExceeded relee el cliente dentro de la tx para armar el error
// con la deuda real al momento del fallo.
func (uc *CreateSaleUseCase) creditLimitExceeded(clientRepo repository.ClientRepository, clientID string, sale *entity.Sale) error {
	e := &domain.CreditLimitExceededError{
		ClientName:    clientID,
		AttemptedDebt: sale.Total,
	}
	if client, err := clientRepo.GetByID(clientID); err == nil && client != nil {
		e.ClientName = client.Name
		e.CreditLimit = client.CreditLimit
		e.AttemptedDebt = client.CurrentDebt.Add(sale.Total)
	}
	return e
}
