package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, name, tax_id, email, phone, credit_limit, current_debt,
		is_active, created_at, updated_at`

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de persistencia para clientes. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente. La deuda inicial siempre es cero.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.TaxID, client.Email, client.Phone,
		client.CreditLimit, client.IsActive, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Devuelve (nil, nil) si no existe.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone,
		&c.CreditLimit, &c.CurrentDebt, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// Update actualiza los datos del cliente. No toca CurrentDebt: la deuda se
// muta solo vía AddDebt/ReduceDebt.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $2, tax_id = $3, email = $4, phone = $5, credit_limit = $6,
			is_active = $7, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.TaxID, client.Email, client.Phone,
		client.CreditLimit, client.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista clientes con paginación.
func (r *ClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(
			&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone,
			&c.CreditLimit, &c.CurrentDebt, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// AddDebt incrementa la deuda de forma condicional: la fila solo se actualiza
// si la nueva deuda no supera el límite de crédito, de modo que dos ventas
// fiadas concurrentes no puedan exceder el límite a partir de lecturas obsoletas.
func (r *ClientRepo) AddDebt(id string, amount decimal.Decimal) error {
	query := `
		UPDATE clients
		SET current_debt = current_debt + $2, updated_at = now()
		WHERE id = $1 AND current_debt + $2 <= credit_limit`
	cmd, err := r.q.Exec(context.Background(), query, id, amount)
	if err != nil {
		return fmt.Errorf("add debt: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(context.Background(),
			`SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("add debt check: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrCreditLimitExceeded
	}
	return nil
}

// ReduceDebt descuenta de la deuda con piso en cero: GREATEST garantiza que la
// deuda nunca quede negativa aunque abonos externos ya la hayan reducido.
func (r *ClientRepo) ReduceDebt(id string, amount decimal.Decimal) error {
	query := `
		UPDATE clients
		SET current_debt = GREATEST(current_debt - $2, 0), updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, amount)
	if err != nil {
		return fmt.Errorf("reduce debt: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
