package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feastly/feastly_backend/internal/apperrors"
	"github.com/feastly/feastly_backend/internal/core/domain"
	portsrepo "github.com/feastly/feastly_backend/internal/core/ports/repositories"
	"github.com/feastly/feastly_backend/internal/dto"
	"github.com/feastly/feastly_backend/internal/models"
	"github.com/feastly/feastly_backend/internal/utils/mapping"
)

// PgxOrderRepository implements the order store using pgxpool.
type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new PgxOrderRepository.
func newPgxOrderRepository(pool *pgxpool.Pool) *PgxOrderRepository {
	return &PgxOrderRepository{BaseRepository: newBaseRepository(pool)}
}

// Ensure PgxOrderRepository implements the WithTx port
var _ portsrepo.OrderRepositoryWithTx = (*PgxOrderRepository)(nil)

// WithTx returns a repository facade bound to the given transaction session.
func (r *PgxOrderRepository) WithTx(tx pgx.Tx) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{BaseRepository: r.BaseRepository.withTx(tx)}
}

const orderColumns = `order_id, user_id, currency, total_price,
	created_at, created_by, last_updated_at, last_updated_by`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var m models.Order
	err := row.Scan(
		&m.OrderID, &m.UserID, &m.Currency, &m.TotalPrice,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxOrderRepository) findItems(ctx context.Context, orderIDs []string) (map[string][]models.OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT order_id, dish_id, dish_name, quantity, unit_price
		FROM order_items WHERE order_id = ANY($1)
		ORDER BY order_id, dish_id`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := map[string][]models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.OrderID, &item.DishID, &item.DishName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	return items, rows.Err()
}

// FindOrderByID retrieves an order with its items.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`
	m, err := scanOrder(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("cannot find order with id " + orderID)
		}
		return nil, apperrors.NewAppError(500, "failed to find order", err)
	}

	items, err := r.findItems(ctx, []string{orderID})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find order items", err)
	}
	order := mapping.ToDomainOrder(*m, items[orderID])
	return &order, nil
}

// ListOrdersByUser retrieves a user's orders, newest first, with the matching
// count for pagination.
func (r *PgxOrderRepository) ListOrdersByUser(ctx context.Context, userID string, pagination dto.Pagination) ([]domain.Order, int, error) {
	var matchingCount int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&matchingCount)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count orders", err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, order_id`
	args := []any{userID}
	if pagination.Limit > 0 {
		query += ` OFFSET $2 LIMIT $3`
		args = append(args, pagination.Skip, pagination.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list orders", err)
	}
	defer rows.Close()

	var orderModels []models.Order
	orderIDs := []string{}
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan order", err)
		}
		orderModels = append(orderModels, *m)
		orderIDs = append(orderIDs, m.OrderID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating orders", err)
	}
	rows.Close()

	items := map[string][]models.OrderItem{}
	if len(orderIDs) > 0 {
		if items, err = r.findItems(ctx, orderIDs); err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to find order items", err)
		}
	}

	orders := make([]domain.Order, len(orderModels))
	for i, m := range orderModels {
		orders[i] = mapping.ToDomainOrder(m, items[m.OrderID])
	}
	return orders, matchingCount, nil
}

// SaveOrder persists the order row and all item rows.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	m, items := mapping.ToModelOrder(order)
	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (order_id, user_id, currency, total_price,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.OrderID, m.UserID, m.Currency, m.TotalPrice,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save order", err)
	}

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(`
			INSERT INTO order_items (order_id, dish_id, dish_name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`,
			item.OrderID, item.DishID, item.DishName, item.Quantity, item.UnitPrice,
		)
	}
	results := r.db.SendBatch(ctx, batch)
	if err := results.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to save order items", err)
	}
	return nil
}
