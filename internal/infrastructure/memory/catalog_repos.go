package memory

import (
	"sort"

	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)
var _ repository.SupplierRepository = (*SupplierRepo)(nil)
var _ repository.UserRepository = (*UserRepo)(nil)
var _ repository.CashAccountRepository = (*CashAccountRepo)(nil)

// CategoryRepo implementación en memoria del puerto de categorías.
type CategoryRepo struct {
	s *Store
}

// NewCategoryRepository construye el repo sobre el store.
func NewCategoryRepository(s *Store) *CategoryRepo {
	return &CategoryRepo{s: s}
}

func (r *CategoryRepo) Create(category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.Name == category.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if c.Name == name {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) Update(category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[category.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	out := make([]*entity.Category, 0)
	for i := offset; i < len(all) && i < offset+limit; i++ {
		c := all[i]
		out = append(out, &c)
	}
	return out, nil
}

func (r *CategoryRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.products {
		if p.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.categories, id)
	return nil
}

// SupplierRepo implementación en memoria del puerto de proveedores.
type SupplierRepo struct {
	s *Store
}

// NewSupplierRepository construye el repo sobre el store.
func NewSupplierRepository(s *Store) *SupplierRepo {
	return &SupplierRepo{s: s}
}

func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if supplier.TaxID != "" {
		for _, s := range r.s.suppliers {
			if s.TaxID == supplier.TaxID {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	s, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SupplierRepo) GetByTaxID(taxID string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, s := range r.s.suppliers {
		if s.TaxID == taxID {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]entity.Supplier, 0, len(r.s.suppliers))
	for _, s := range r.s.suppliers {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	out := make([]*entity.Supplier, 0)
	for i := offset; i < len(all) && i < offset+limit; i++ {
		s := all[i]
		out = append(out, &s)
	}
	return out, nil
}

func (r *SupplierRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.products {
		if p.SupplierID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.suppliers, id)
	return nil
}

// UserRepo implementación en memoria del puerto de usuarios.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el repo sobre el store.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrDuplicate
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, u := range r.s.users {
		if id != user.ID && u.Email == user.Email {
			return domain.ErrDuplicate
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	out := make([]*entity.User, 0)
	for i := offset; i < len(all) && i < offset+limit; i++ {
		u := all[i]
		out = append(out, &u)
	}
	return out, nil
}

func (r *UserRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrNotFound
	}
	for _, sale := range r.s.sales {
		if sale.UserID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.users, id)
	return nil
}

// CashAccountRepo implementación en memoria del puerto de cuentas.
type CashAccountRepo struct {
	s *Store
}

// NewCashAccountRepository construye el repo sobre el store.
func NewCashAccountRepository(s *Store) *CashAccountRepo {
	return &CashAccountRepo{s: s}
}

func (r *CashAccountRepo) Create(account *entity.CashAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[account.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.accounts[account.ID] = *account
	return nil
}

func (r *CashAccountRepo) GetByID(id string) (*entity.CashAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *CashAccountRepo) Update(account *entity.CashAccount) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[account.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.accounts[account.ID] = *account
	return nil
}

func (r *CashAccountRepo) List(limit, offset int) ([]*entity.CashAccount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]entity.CashAccount, 0, len(r.s.accounts))
	for _, a := range r.s.accounts {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	out := make([]*entity.CashAccount, 0)
	for i := offset; i < len(all) && i < offset+limit; i++ {
		a := all[i]
		out = append(out, &a)
	}
	return out, nil
}

func (r *CashAccountRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.accounts, id)
	return nil
}
