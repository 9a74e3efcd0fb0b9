package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrCreditLimitExceeded = errors.New("límite de crédito excedido")
	ErrInactiveProduct     = errors.New("producto inactivo")
	ErrInvalidState        = errors.New("estado inválido para la operación")
)

// InsufficientStockError detalla un rechazo por stock insuficiente:
// qué producto, cuánto hay disponible y cuánto se pidió.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: disponible %d, solicitado %d",
		e.ProductName, e.Available, e.Requested)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// CreditLimitExceededError detalla un rechazo por exceder el límite de crédito del cliente.
type CreditLimitExceededError struct {
	ClientName    string
	CreditLimit   decimal.Decimal
	AttemptedDebt decimal.Decimal
}

func (e *CreditLimitExceededError) Error() string {
	return fmt.Sprintf("límite de crédito excedido para %q: límite %s, deuda proyectada %s",
		e.ClientName, e.CreditLimit.StringFixed(2), e.AttemptedDebt.StringFixed(2))
}

// Unwrap permite errors.Is(err, ErrCreditLimitExceeded).
func (e *CreditLimitExceededError) Unwrap() error { return ErrCreditLimitExceeded }
