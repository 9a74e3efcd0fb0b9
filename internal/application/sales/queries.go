package sales

import (
	"fmt"

	"github.com/jfvaldes/ventapro-api/internal/application/dto"
	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
)

// SaleQueryUseCase consultas de ventas (sin efectos sobre stock ni deuda).
type SaleQueryUseCase struct {
	saleRepo repository.SaleRepository
}

// NewSaleQueryUseCase construye el caso de uso.
func NewSaleQueryUseCase(saleRepo repository.SaleRepository) *SaleQueryUseCase {
	return &SaleQueryUseCase{saleRepo: saleRepo}
}

// GetByID obtiene una venta con sus líneas.
func (uc *SaleQueryUseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	return toSaleResponse(sale), nil
}

// List lista ventas filtrando por estado y rango de fechas.
func (uc *SaleQueryUseCase) List(in dto.ListSalesRequest) (*dto.SaleListResponse, error) {
	in.Normalize()
	status := entity.PaymentStatus(in.Status)
	if in.Status != "" && !status.IsValid() {
		return nil, fmt.Errorf("%w: estado %q no soportado", domain.ErrInvalidInput, in.Status)
	}
	list, err := uc.saleRepo.List(status, in.From, in.To, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			Total:       it.Total,
		})
	}
	return &dto.SaleResponse{
		ID:            s.ID,
		ClientID:      s.ClientID,
		UserID:        s.UserID,
		Items:         items,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Total:         s.Total,
		PaymentMethod: string(s.PaymentMethod),
		PaymentStatus: string(s.PaymentStatus),
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
	}
}
