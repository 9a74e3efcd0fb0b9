package memory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria del puerto de productos.
type ProductRepo struct {
	s      *Store
	locked bool
}

// NewProductRepository construye el repo sobre el store.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) Create(product *entity.Product) error {
	unlock := r.s.wlock(r.locked)
	defer unlock()
	if _, ok := r.s.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	unlock := r.s.rlock(r.locked)
	defer unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate equivale a GetByID: el lock global del store ya serializa.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *ProductRepo) Update(product *entity.Product) error {
	unlock := r.s.wlock(r.locked)
	defer unlock()
	current, ok := r.s.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	// Quantity no se toca por Update, igual que en PostgreSQL.
	updated := *product
	updated.Quantity = current.Quantity
	r.s.products[product.ID] = updated
	return nil
}

func (r *ProductRepo) AdjustQuantity(id string, delta int) error {
	unlock := r.s.wlock(r.locked)
	defer unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Quantity+delta < 0 {
		return domain.ErrInsufficientStock
	}
	p.Quantity += delta
	r.s.products[id] = p
	return nil
}

func (r *ProductRepo) UpdateCostPrice(id string, cost decimal.Decimal) error {
	unlock := r.s.wlock(r.locked)
	defer unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CostPrice = cost
	r.s.products[id] = p
	return nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	unlock := r.s.rlock(r.locked)
	defer unlock()
	all := make([]entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return pageProducts(all, limit, offset), nil
}

func (r *ProductRepo) ListBelowMinimum() ([]*entity.Product, error) {
	unlock := r.s.rlock(r.locked)
	defer unlock()
	var all []entity.Product
	for _, p := range r.s.products {
		if p.IsActive && p.Quantity <= p.MinQuantity {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Quantity < all[j].Quantity })
	out := make([]*entity.Product, len(all))
	for i := range all {
		out[i] = &all[i]
	}
	return out, nil
}

func (r *ProductRepo) Delete(id string) error {
	unlock := r.s.wlock(r.locked)
	defer unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func pageProducts(all []entity.Product, limit, offset int) []*entity.Product {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]*entity.Product, 0, end-offset)
	for i := offset; i < end; i++ {
		p := all[i]
		out = append(out, &p)
	}
	return out
}
