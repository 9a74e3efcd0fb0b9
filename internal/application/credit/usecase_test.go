package credit_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfvaldes/ventapro-api/internal/application/credit"
	"github.com/jfvaldes/ventapro-api/internal/application/dto"
	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/infrastructure/memory"
)

const testClienteID = "00000000-0000-0000-0000-000000000201"

// newPaymentFixture arma el caso de uso con un cliente sembrado con la deuda
// indicada.
func newPaymentFixture(t *testing.T, creditLimit, currentDebt string) (*credit.PaymentUseCase, *memory.ClientRepo) {
	t.Helper()
	store := memory.NewStore()
	clients := memory.NewClientRepository(store)
	err := clients.Create(&entity.Client{
		ID:          testClienteID,
		Name:        "María Pérez",
		CreditLimit: decimal.RequireFromString(creditLimit),
		IsActive:    true,
	})
	require.NoError(t, err)
	debt := decimal.RequireFromString(currentDebt)
	if debt.IsPositive() {
		require.NoError(t, clients.AddDebt(testClienteID, debt))
	}
	return credit.NewPaymentUseCase(clients), clients
}

func TestRegisterPayment_ReduceDeuda(t *testing.T) {
	uc, _ := newPaymentFixture(t, "500.00", "200.00")

	resp, err := uc.RegisterPayment(testClienteID, dto.RegisterPaymentRequest{
		Amount: decimal.RequireFromString("80.00"),
	})

	require.NoError(t, err)
	assert.True(t, resp.CurrentDebt.Equal(decimal.RequireFromString("120.00")),
		"200 − 80 debe dar 120, se obtuvo %s", resp.CurrentDebt)
	assert.True(t, resp.AvailableCredit.Equal(decimal.RequireFromString("380.00")),
		"el cupo disponible es límite − deuda")
}

func TestRegisterPayment_AbonoMayorDejaDeudaEnCero(t *testing.T) {
	uc, clients := newPaymentFixture(t, "500.00", "50.00")

	resp, err := uc.RegisterPayment(testClienteID, dto.RegisterPaymentRequest{
		Amount: decimal.RequireFromString("80.00"),
	})

	require.NoError(t, err)
	assert.True(t, resp.CurrentDebt.IsZero(), "la deuda se acota en cero")

	stored, err := clients.GetByID(testClienteID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.CurrentDebt.IsZero(), "también en el repositorio")
}

func TestRegisterPayment_AbonoNoPositivo(t *testing.T) {
	uc, _ := newPaymentFixture(t, "500.00", "100.00")

	for _, amount := range []string{"0", "-5.00"} {
		_, err := uc.RegisterPayment(testClienteID, dto.RegisterPaymentRequest{
			Amount: decimal.RequireFromString(amount),
		})
		require.Error(t, err, "abono %s", amount)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestRegisterPayment_ClienteInexistente(t *testing.T) {
	uc, _ := newPaymentFixture(t, "500.00", "0")

	_, err := uc.RegisterPayment("00000000-0000-0000-0000-0000000000ff", dto.RegisterPaymentRequest{
		Amount: decimal.RequireFromString("10.00"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
