package inventory

import (
	"context"

	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Si fn retorna error, el runner hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// Notifier recibe las alertas de stock bajo que encuentra el monitor.
type Notifier interface {
	NotifyLowStock(products []*entity.Product)
}
