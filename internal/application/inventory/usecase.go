package inventory

import (
	"fmt"
	"sort"

	"github.com/jfvaldes/ventapro-api/internal/application/dto"
	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
)

// InventoryQueryUseCase consultas de solo lectura sobre el inventario:
// historial de movimientos y productos con stock bajo.
type InventoryQueryUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewInventoryQueryUseCase construye el caso de uso.
func NewInventoryQueryUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *InventoryQueryUseCase {
	return &InventoryQueryUseCase{productRepo: productRepo, movementRepo: movementRepo}
}

// History devuelve el historial de movimientos de un producto, del más
// reciente al más antiguo.
func (uc *InventoryQueryUseCase) History(productID string, in dto.ListMovementsRequest) (*dto.MovementListResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	in.Normalize()
	list, err := uc.movementRepo.ListByProduct(productID, in.From, in.To, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// ByReference devuelve los movimientos ligados a una referencia (por
// ejemplo el ID de una venta), en orden de creación.
func (uc *InventoryQueryUseCase) ByReference(reference string) ([]dto.MovementResponse, error) {
	list, err := uc.movementRepo.ListByReference(reference)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return items, nil
}

// LowStock devuelve los productos activos en o por debajo de su mínimo,
// ordenados del déficit más grande al más chico.
func (uc *InventoryQueryUseCase) LowStock() ([]dto.LowStockItem, error) {
	products, err := uc.productRepo.ListBelowMinimum()
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItem, 0, len(products))
	for _, p := range products {
		items = append(items, dto.LowStockItem{
			ProductID:   p.ID,
			Name:        p.Name,
			Quantity:    p.Quantity,
			MinQuantity: p.MinQuantity,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].MinQuantity-items[i].Quantity > items[j].MinQuantity-items[j].Quantity
	})
	return items, nil
}
