package memory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación en memoria del puerto de clientes.
type ClientRepo struct {
	s      *Store
	locked bool
}

// NewClientRepository construye el repo sobre el store.
func NewClientRepository(s *Store) *ClientRepo {
	return &ClientRepo{s: s}
}

func (r *ClientRepo) Create(client *entity.Client) error {
	unlock := r.s.wlock(r.locked)
	defer unlock()
	if _, ok := r.s.clients[client.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *client
	c.CurrentDebt = decimal.Zero
	r.s.clients[client.ID] = c
	return nil
}

func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	unlock := r.s.rlock(r.locked)
	defer unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ClientRepo) Update(client *entity.Client) error {
	unlock := r.s.wlock(r.locked)
	defer unlock()
	current, ok := r.s.clients[client.ID]
	if !ok {
		return domain.ErrNotFound
	}
	// La deuda solo la mueven AddDebt y ReduceDebt, igual que en PostgreSQL.
	updated := *client
	updated.CurrentDebt = current.CurrentDebt
	r.s.clients[client.ID] = updated
	return nil
}

func (r *ClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	unlock := r.s.rlock(r.locked)
	defer unlock()
	all := make([]entity.Client, 0, len(r.s.clients))
	for _, c := range r.s.clients {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]*entity.Client, 0, end-offset)
	for i := offset; i < end; i++ {
		c := all[i]
		out = append(out, &c)
	}
	return out, nil
}

func (r *ClientRepo) AddDebt(id string, amount decimal.Decimal) error {
	unlock := r.s.wlock(r.locked)
	defer unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return domain.ErrNotFound
	}
	projected := c.CurrentDebt.Add(amount)
	if projected.GreaterThan(c.CreditLimit) {
		return domain.ErrCreditLimitExceeded
	}
	c.CurrentDebt = projected
	r.s.clients[id] = c
	return nil
}

func (r *ClientRepo) ReduceDebt(id string, amount decimal.Decimal) error {
	unlock := r.s.wlock(r.locked)
	defer unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.CurrentDebt = c.CurrentDebt.Sub(amount)
	if c.CurrentDebt.IsNegative() {
		c.CurrentDebt = decimal.Zero
	}
	r.s.clients[id] = c
	return nil
}
