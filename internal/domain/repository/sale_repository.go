package repository

import (
	"time"

	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para el agregado Sale (DIP).
type SaleRepository interface {
	// Create persiste la venta junto con todas sus líneas.
	Create(sale *entity.Sale) error
	// GetByID devuelve la venta con sus líneas cargadas, o (nil, nil) si no existe.
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate obtiene la venta bloqueando su fila; serializa cancelaciones
	// concurrentes. Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Sale, error)
	List(status entity.PaymentStatus, from, to *time.Time, limit, offset int) ([]*entity.Sale, error)
	// MarkCancelled transiciona la venta a CANCELLED solo si aún no lo está
	// (compare-and-swap); falla con domain.ErrConflict si ya estaba cancelada.
	MarkCancelled(id string) error
}
