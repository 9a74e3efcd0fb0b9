package memory

import (
	"sort"
	"time"

	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación en memoria del puerto de ventas.
type SaleRepo struct {
	s      *Store
	locked bool
}

// NewSaleRepository construye el repo sobre el store.
func NewSaleRepository(s *Store) *SaleRepo {
	return &SaleRepo{s: s}
}

func (r *SaleRepo) Create(sale *entity.Sale) error {
	unlock := r.s.wlock(r.locked)
	defer unlock()
	if _, ok := r.s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.sales[sale.ID] = cloneSale(*sale)
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	unlock := r.s.rlock(r.locked)
	defer unlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	out := cloneSale(sale)
	return &out, nil
}

// GetForUpdate equivale a GetByID: el lock global del store ya serializa.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *SaleRepo) List(status entity.PaymentStatus, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	unlock := r.s.rlock(r.locked)
	defer unlock()
	var all []entity.Sale
	for _, sale := range r.s.sales {
		if status != "" && sale.PaymentStatus != status {
			continue
		}
		if from != nil && sale.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && sale.CreatedAt.After(*to) {
			continue
		}
		all = append(all, cloneSale(sale))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]*entity.Sale, 0, end-offset)
	for i := offset; i < end; i++ {
		sale := all[i]
		out = append(out, &sale)
	}
	return out, nil
}

func (r *SaleRepo) MarkCancelled(id string) error {
	unlock := r.s.wlock(r.locked)
	defer unlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	if sale.PaymentStatus == entity.StatusCancelled {
		return domain.ErrConflict
	}
	sale.PaymentStatus = entity.StatusCancelled
	r.s.sales[id] = sale
	return nil
}
