package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT ... FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// AdjustQuantity aplica un delta (positivo o negativo) sobre la existencia de
	// forma condicional: falla con domain.ErrInsufficientStock si el resultado
	// quedaría negativo y con domain.ErrNotFound si el producto no existe.
	AdjustQuantity(id string, delta int) error
	// UpdateCostPrice fija el costo promedio del producto. Lo usa la recepción
	// de mercadería dentro de su transacción.
	UpdateCostPrice(id string, cost decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	// ListBelowMinimum lista productos activos con existencia en o por debajo del umbral.
	ListBelowMinimum() ([]*entity.Product, error)
	// Delete elimina el producto. Las ventas y movimientos históricos conservan
	// su propia copia de los datos, así que no se bloquea por referencias.
	Delete(id string) error
}
