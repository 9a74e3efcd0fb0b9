package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client (DIP).
// Las mutaciones de deuda son condicionales a nivel de almacenamiento para que
// dos operaciones concurrentes no puedan pasar ambas una verificación obsoleta.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	Update(client *entity.Client) error
	List(limit, offset int) ([]*entity.Client, error)
	// AddDebt incrementa la deuda solo si deuda+amount ≤ límite de crédito;
	// falla con domain.ErrCreditLimitExceeded si el incremento no cabe y con
	// domain.ErrNotFound si el cliente no existe.
	AddDebt(id string, amount decimal.Decimal) error
	// ReduceDebt descuenta de la deuda con piso en cero (nunca deuda negativa).
	ReduceDebt(id string, amount decimal.Decimal) error
}
