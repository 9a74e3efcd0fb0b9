// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Es el modo dev/demo del servicio: se usa cuando no hay base de
// datos configurada y no persiste nada entre reinicios.
package memory

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jfvaldes/ventapro-api/internal/application/inventory"
	"github.com/jfvaldes/ventapro-api/internal/application/sales"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
)

// Store guarda todas las colecciones bajo un único RWMutex. Las lecturas
// toman RLock; las transacciones toman el lock de escritura completo, así
// que dentro de una tx no hay carreras y GetForUpdate equivale a GetByID.
type Store struct {
	mu         sync.RWMutex
	products   map[string]entity.Product
	clients    map[string]entity.Client
	sales      map[string]entity.Sale
	movements  []entity.StockMovement
	categories map[string]entity.Category
	suppliers  map[string]entity.Supplier
	users      map[string]entity.User
	accounts   map[string]entity.CashAccount
}

// NewStore construye el store con los mismos datos semilla que las
// migraciones: un usuario admin y la caja principal. La contraseña del
// admin sale de SEED_ADMIN_PASSWORD o usa el default de desarrollo.
func NewStore() *Store {
	s := &Store{
		products:   map[string]entity.Product{},
		clients:    map[string]entity.Client{},
		sales:      map[string]entity.Sale{},
		categories: map[string]entity.Category{},
		suppliers:  map[string]entity.Supplier{},
		users:      map[string]entity.User{},
		accounts:   map[string]entity.CashAccount{},
	}
	now := time.Now()

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "cambiar-ya"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err == nil {
		admin := entity.User{
			ID:           uuid.New().String(),
			Name:         "Administrador",
			Email:        "admin@ventapro.local",
			PasswordHash: string(hash),
			Role:         entity.RoleAdmin,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		s.users[admin.ID] = admin
	}

	caja := entity.CashAccount{
		ID:        uuid.New().String(),
		Name:      "Caja principal",
		Type:      entity.AccountCash,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.accounts[caja.ID] = caja
	return s
}

// rlock toma el read lock salvo que el caller ya esté dentro de una tx.
func (s *Store) rlock(locked bool) func() {
	if locked {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

// wlock toma el write lock salvo que el caller ya esté dentro de una tx.
func (s *Store) wlock(locked bool) func() {
	if locked {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// snapshot copia las colecciones que tocan las transacciones. El historial
// de movimientos es append-only, así que basta recordar su longitud.
type snapshot struct {
	products  map[string]entity.Product
	clients   map[string]entity.Client
	sales     map[string]entity.Sale
	movements int
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		products:  make(map[string]entity.Product, len(s.products)),
		clients:   make(map[string]entity.Client, len(s.clients)),
		sales:     make(map[string]entity.Sale, len(s.sales)),
		movements: len(s.movements),
	}
	for id, p := range s.products {
		snap.products[id] = p
	}
	for id, c := range s.clients {
		snap.clients[id] = c
	}
	for id, sale := range s.sales {
		snap.sales[id] = cloneSale(sale)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.clients = snap.clients
	s.sales = snap.sales
	s.movements = s.movements[:snap.movements]
}

// cloneSale copia la venta con su slice de items, para que el valor del
// mapa no comparta backing array con lo que ve el caller.
func cloneSale(sale entity.Sale) entity.Sale {
	items := make([]entity.SaleItem, len(sale.Items))
	copy(items, sale.Items)
	sale.Items = items
	return sale
}

// TxRunner simula la transacción: toma el write lock, saca un snapshot y lo
// restaura si fn falla. Implementa inventory.TxRunner y sales.TxRunner.
type TxRunner struct {
	s *Store
}

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos de inventario en modo tx.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(
		&ProductRepo{s: r.s, locked: true},
		&StockMovementRepo{s: r.s, locked: true},
	); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// RunSale ejecuta fn con los repos del flujo de venta en modo tx.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	clientRepo repository.ClientRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(
		&SaleRepo{s: r.s, locked: true},
		&ProductRepo{s: r.s, locked: true},
		&StockMovementRepo{s: r.s, locked: true},
		&ClientRepo{s: r.s, locked: true},
	); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
