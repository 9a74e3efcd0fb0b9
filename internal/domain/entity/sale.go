package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jfvaldes/ventapro-api/internal/domain"
)

// PaymentMethod forma de pago de una venta. Conjunto cerrado.
type PaymentMethod string

// Formas de pago aceptadas.
const (
	PaymentCash        PaymentMethod = "CASH"
	PaymentCard        PaymentMethod = "CARD"
	PaymentPix         PaymentMethod = "PIX"
	PaymentStoreCredit PaymentMethod = "STORE_CREDIT" // fiado contra el límite de crédito del cliente
)

// IsValid reporta si la forma de pago pertenece al conjunto cerrado.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentPix, PaymentStoreCredit:
		return true
	}
	return false
}

// PaymentStatus estado de pago de una venta.
type PaymentStatus string

// Estados de pago. CANCELLED es terminal: una venta cancelada no admite más transiciones.
const (
	StatusPending   PaymentStatus = "PENDING"
	StatusPaid      PaymentStatus = "PAID"
	StatusCancelled PaymentStatus = "CANCELLED"
)

// IsValid reporta si el estado pertenece al conjunto cerrado.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// SaleItem es una línea de venta. Congela nombre y precio del producto al
// momento de la venta; Total = Quantity×UnitPrice − Discount.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
}

// NewSaleItem construye una línea validada con el total calculado.
func NewSaleItem(productID, productName string, quantity int, unitPrice, discount decimal.Decimal) (*SaleItem, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: item sin producto", domain.ErrInvalidInput)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: precio unitario negativo", domain.ErrInvalidInput)
	}
	if discount.IsNegative() {
		return nil, fmt.Errorf("%w: descuento negativo", domain.ErrInvalidInput)
	}

	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	if discount.GreaterThan(subtotal) {
		return nil, fmt.Errorf("%w: el descuento del item supera su subtotal", domain.ErrInvalidInput)
	}

	return &SaleItem{
		ID:          uuid.New().String(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Discount:    discount,
		Total:       subtotal.Sub(discount),
	}, nil
}

// Sale es el agregado de una transacción de punto de venta. Items y totales
// son inmutables después de la creación; solo PaymentStatus cambia, y
// únicamente hacia CANCELLED.
type Sale struct {
	ID            string
	ClientID      *string // nil = consumidor final
	UserID        string  // operador que registró la venta
	Items         []SaleItem
	Subtotal      decimal.Decimal // suma de los totales de item
	Discount      decimal.Decimal // descuento a nivel de venta
	Total         decimal.Decimal // Subtotal − Discount
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Notes         string
	CreatedAt     time.Time
}

// NewSale construye el agregado validado: calcula subtotal y total, asigna el
// ID de la venta a cada item y fija el estado inicial (PENDING para fiado,
// PAID para pago inmediato).
func NewSale(clientID *string, userID string, items []SaleItem, discount decimal.Decimal, method PaymentMethod, notes string) (*Sale, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: la venta requiere un operador", domain.ErrInvalidInput)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: la venta requiere al menos un item", domain.ErrInvalidInput)
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: forma de pago desconocida %q", domain.ErrInvalidInput, method)
	}
	if method == PaymentStoreCredit && clientID == nil {
		return nil, fmt.Errorf("%w: venta a crédito requiere un cliente registrado", domain.ErrInvalidInput)
	}
	if discount.IsNegative() {
		return nil, fmt.Errorf("%w: descuento negativo", domain.ErrInvalidInput)
	}

	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Total)
	}
	if discount.GreaterThan(subtotal) {
		return nil, fmt.Errorf("%w: el descuento supera el subtotal de la venta", domain.ErrInvalidInput)
	}

	status := StatusPaid
	if method == PaymentStoreCredit {
		status = StatusPending
	}

	saleID := uuid.New().String()
	for i := range items {
		items[i].SaleID = saleID
	}

	return &Sale{
		ID:            saleID,
		ClientID:      clientID,
		UserID:        userID,
		Items:         items,
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         subtotal.Sub(discount),
		PaymentMethod: method,
		PaymentStatus: status,
		Notes:         notes,
		CreatedAt:     time.Now(),
	}, nil
}

// IsCancelled indica si la venta ya está en el estado terminal.
func (s *Sale) IsCancelled() bool {
	return s.PaymentStatus == StatusCancelled
}
