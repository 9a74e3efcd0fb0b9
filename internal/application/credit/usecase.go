// Package credit maneja los abonos a la deuda de clientes con venta a crédito.
package credit

import (
	"fmt"

	"github.com/jfvaldes/ventapro-api/internal/application/dto"
	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
)

// PaymentUseCase registra abonos que reducen la deuda de un cliente.
type PaymentUseCase struct {
	clientRepo repository.ClientRepository
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(clientRepo repository.ClientRepository) *PaymentUseCase {
	return &PaymentUseCase{clientRepo: clientRepo}
}

// RegisterPayment descuenta el abono de la deuda del cliente. La reducción
// está acotada en cero: abonar más de lo adeudado deja la deuda en 0.
func (uc *PaymentUseCase) RegisterPayment(clientID string, in dto.RegisterPaymentRequest) (*dto.ClientResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el abono debe ser mayor que cero", domain.ErrInvalidInput)
	}
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, clientID)
	}
	if err := uc.clientRepo.ReduceDebt(clientID, in.Amount); err != nil {
		return nil, err
	}
	client, err = uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, clientID)
	}
	return toClientResponse(client), nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:              c.ID,
		Name:            c.Name,
		TaxID:           c.TaxID,
		Email:           c.Email,
		Phone:           c.Phone,
		CreditLimit:     c.CreditLimit,
		CurrentDebt:     c.CurrentDebt,
		AvailableCredit: c.AvailableCredit(),
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
