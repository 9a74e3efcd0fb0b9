package repository

import "github.com/jfvaldes/ventapro-api/internal/domain/entity"

// CashAccountRepository define el puerto de persistencia para CashAccount (DIP).
type CashAccountRepository interface {
	Create(account *entity.CashAccount) error
	GetByID(id string) (*entity.CashAccount, error)
	Update(account *entity.CashAccount) error
	List(limit, offset int) ([]*entity.CashAccount, error)
	Delete(id string) error
}
