package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jfvaldes/ventapro-api/internal/application/dto"
	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
)

// CashAccountUseCase casos de uso CRUD para las cuentas de caja y banco.
type CashAccountUseCase struct {
	repo repository.CashAccountRepository
}

// NewCashAccountUseCase construye el caso de uso.
func NewCashAccountUseCase(repo repository.CashAccountRepository) *CashAccountUseCase {
	return &CashAccountUseCase{repo: repo}
}

// Create crea una cuenta.
func (uc *CashAccountUseCase) Create(in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.AccountCash && in.Type != entity.AccountBank {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	account := &entity.CashAccount{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		Balance:   in.Balance,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// GetByID obtiene una cuenta por ID. Devuelve (nil, nil) si no existe.
func (uc *CashAccountUseCase) GetByID(id string) (*dto.AccountResponse, error) {
	account, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}
	return toAccountResponse(account), nil
}

// Update actualiza nombre o estado de una cuenta. El balance lo mueven las
// operaciones de caja, no este CRUD.
func (uc *CashAccountUseCase) Update(id string, in dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	account, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		account.Name = *in.Name
	}
	if in.IsActive != nil {
		account.IsActive = *in.IsActive
	}
	account.UpdatedAt = time.Now()
	if err := uc.repo.Update(account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// List lista cuentas con paginación.
func (uc *CashAccountUseCase) List(page dto.PageRequest) ([]dto.AccountResponse, error) {
	page.Normalize()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AccountResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAccountResponse(a))
	}
	return items, nil
}

// Delete elimina una cuenta.
func (uc *CashAccountUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toAccountResponse(a *entity.CashAccount) *dto.AccountResponse {
	if a == nil {
		return nil
	}
	return &dto.AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Type:      a.Type,
		Balance:   a.Balance,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
