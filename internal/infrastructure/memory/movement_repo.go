package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación en memoria del historial de movimientos.
// Append-only, como la tabla.
type StockMovementRepo struct {
	s      *Store
	locked bool
}

// NewStockMovementRepository construye el repo sobre el store.
func NewStockMovementRepository(s *Store) *StockMovementRepo {
	return &StockMovementRepo{s: s}
}

func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	unlock := r.s.wlock(r.locked)
	defer unlock()
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	r.s.movements = append(r.s.movements, *movement)
	return nil
}

func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	unlock := r.s.rlock(r.locked)
	defer unlock()
	for i := range r.s.movements {
		if r.s.movements[i].ID == id {
			m := r.s.movements[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (r *StockMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	unlock := r.s.rlock(r.locked)
	defer unlock()
	var all []entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]*entity.StockMovement, 0, end-offset)
	for i := offset; i < end; i++ {
		m := all[i]
		out = append(out, &m)
	}
	return out, nil
}

func (r *StockMovementRepo) ListByReference(reference string) ([]*entity.StockMovement, error) {
	unlock := r.s.rlock(r.locked)
	defer unlock()
	var out []*entity.StockMovement
	for i := range r.s.movements {
		if r.s.movements[i].Reference == reference {
			m := r.s.movements[i]
			out = append(out, &m)
		}
	}
	return out, nil
}
