package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
)

var _ repository.CashAccountRepository = (*CashAccountRepo)(nil)

const accountColumns = `id, name, type, balance, is_active, created_at, updated_at`

// CashAccountRepo implementación del puerto CashAccountRepository sobre PostgreSQL.
type CashAccountRepo struct {
	q Querier
}

// NewCashAccountRepository construye el adaptador de persistencia para cuentas financieras.
func NewCashAccountRepository(q Querier) *CashAccountRepo {
	return &CashAccountRepo{q: q}
}

// Create persiste una nueva cuenta financiera.
func (r *CashAccountRepo) Create(account *entity.CashAccount) error {
	query := `
		INSERT INTO cash_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.Name, account.Type, account.Balance,
		account.IsActive, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cash account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID. Devuelve (nil, nil) si no existe.
func (r *CashAccountRepo) GetByID(id string) (*entity.CashAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM cash_accounts WHERE id = $1`
	var a entity.CashAccount
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.Name, &a.Type, &a.Balance, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash account: %w", err)
	}
	return &a, nil
}

// Update actualiza una cuenta existente.
func (r *CashAccountRepo) Update(account *entity.CashAccount) error {
	query := `
		UPDATE cash_accounts
		SET name = $2, type = $3, balance = $4, is_active = $5, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		account.ID, account.Name, account.Type, account.Balance, account.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update cash account: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista cuentas con paginación.
func (r *CashAccountRepo) List(limit, offset int) ([]*entity.CashAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM cash_accounts ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cash accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashAccount
	for rows.Next() {
		var a entity.CashAccount
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Balance, &a.IsActive,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cash account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete elimina una cuenta por ID.
func (r *CashAccountRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM cash_accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cash account: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
