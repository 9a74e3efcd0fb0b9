package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jfvaldes/ventapro-api/internal/domain"
	"github.com/jfvaldes/ventapro-api/internal/domain/entity"
	"github.com/jfvaldes/ventapro-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, client_id, user_id, subtotal, discount, total,
		payment_method, payment_status, notes, created_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y todas sus líneas. Dentro de una transacción la
// inserción completa es atómica; las líneas conservan el orden del comando.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ClientID, sale.UserID, sale.Subtotal, sale.Discount, sale.Total,
		string(sale.PaymentMethod), string(sale.PaymentStatus), sale.Notes, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (id, sale_id, product_id, product_name, quantity, unit_price, discount, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, it := range sale.Items {
		if _, err := r.q.Exec(context.Background(), itemQuery,
			it.ID, it.SaleID, it.ProductID, it.ProductName,
			it.Quantity, it.UnitPrice, it.Discount, it.Total,
		); err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la venta con sus líneas, o (nil, nil) si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate obtiene la venta bloqueando su fila hasta el fin de la transacción;
// serializa cancelaciones concurrentes sobre la misma venta.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *SaleRepo) getOne(query, id string) (*entity.Sale, error) {
	row := r.q.QueryRow(context.Background(), query, id)
	s, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.itemsBySaleIDs([]string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Items = items[s.ID]
	return s, nil
}

// List lista ventas con sus líneas, filtrando opcionalmente por estado y rango de fechas.
func (r *SaleRepo) List(status entity.PaymentStatus, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" AND payment_status = $%d", pos)
		args = append(args, string(status))
		pos++
	}
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	var ids []string
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	items, err := r.itemsBySaleIDs(ids)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		s.Items = items[s.ID]
	}
	return list, nil
}

// MarkCancelled transiciona la venta a CANCELLED solo si aún no lo está
// (compare-and-swap sobre payment_status).
func (r *SaleRepo) MarkCancelled(id string) error {
	query := `
		UPDATE sales SET payment_status = $2
		WHERE id = $1 AND payment_status <> $2`
	cmd, err := r.q.Exec(context.Background(), query, id, string(entity.StatusCancelled))
	if err != nil {
		return fmt.Errorf("mark cancelled: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(context.Background(),
			`SELECT EXISTS (SELECT 1 FROM sales WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("mark cancelled check: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	return nil
}

// itemsBySaleIDs carga las líneas de un conjunto de ventas en una sola consulta,
// agrupadas por venta y en el orden de inserción.
func (r *SaleRepo) itemsBySaleIDs(ids []string) (map[string][]entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price, discount, total
		FROM sale_items WHERE sale_id = ANY($1) ORDER BY line_no ASC`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]entity.SaleItem)
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.Discount, &it.Total); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items[it.SaleID] = append(items[it.SaleID], it)
	}
	return items, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var method, status string
	err := row.Scan(
		&s.ID, &s.ClientID, &s.UserID, &s.Subtotal, &s.Discount, &s.Total,
		&method, &status, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.PaymentMethod = entity.PaymentMethod(method)
	s.PaymentStatus = entity.PaymentStatus(status)
	return &s, nil
}
