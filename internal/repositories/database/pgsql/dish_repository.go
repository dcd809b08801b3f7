package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/feastly/feastly_backend/internal/apperrors"
	"github.com/feastly/feastly_backend/internal/core/domain"
	portsrepo "github.com/feastly/feastly_backend/internal/core/ports/repositories"
	"github.com/feastly/feastly_backend/internal/dto"
	"github.com/feastly/feastly_backend/internal/models"
	"github.com/feastly/feastly_backend/internal/utils/mapping"
	"github.com/feastly/feastly_backend/internal/utils/selectfields"
)

// projectable lists the dish fields a selection map may reference, in the
// column order queries use. dish_id is always fetched.
var projectable = []struct {
	field  string
	column string
}{
	{"name", "name"},
	{"category", "category"},
	{"cuisine", "cuisine"},
	{"type", "type"},
	{"description", "description"},
	{"images", "images"},
	{"coverImage", "cover_image"},
	{"unitPrice", "unit_price"},
	{"currency", "currency"},
	{"mainUnitPrice", "main_unit_price"},
	{"stock", "stock"},
	{"ratingsAverage", "ratings_average"},
	{"ratingsCount", "ratings_count"},
}

// PgxDishRepository implements the catalog store using pgxpool.
type PgxDishRepository struct {
	BaseRepository
}

// newPgxDishRepository creates a new PgxDishRepository.
func newPgxDishRepository(pool *pgxpool.Pool) *PgxDishRepository {
	return &PgxDishRepository{BaseRepository: newBaseRepository(pool)}
}

// Ensure PgxDishRepository implements the WithTx port
var _ portsrepo.DishRepositoryWithTx = (*PgxDishRepository)(nil)

// WithTx returns a repository facade bound to the given transaction session.
func (r *PgxDishRepository) WithTx(tx pgx.Tx) portsrepo.DishRepositoryFacade {
	return &PgxDishRepository{BaseRepository: r.BaseRepository.withTx(tx)}
}

const dishColumns = `dish_id, name, category, cuisine, type, description, images, cover_image,
	unit_price, currency, main_unit_price, stock, ratings_average, ratings_count,
	created_at, created_by, last_updated_at, last_updated_by`

func scanDish(row pgx.Row) (*models.Dish, error) {
	var m models.Dish
	err := row.Scan(
		&m.DishID, &m.Name, &m.Category, &m.Cuisine, &m.Type, &m.Description, &m.Images, &m.CoverImage,
		&m.UnitPrice, &m.Currency, &m.MainUnitPrice, &m.Stock, &m.RatingsAverage, &m.RatingsCount,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindDishByID retrieves a dish by its ID.
func (r *PgxDishRepository) FindDishByID(ctx context.Context, dishID string) (*domain.Dish, error) {
	query := `SELECT ` + dishColumns + ` FROM dishes WHERE dish_id = $1;`
	m, err := scanDish(r.db.QueryRow(ctx, query, dishID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("cannot find dish with id " + dishID)
		}
		return nil, apperrors.NewAppError(500, "failed to find dish", err)
	}
	d := mapping.ToDomainDish(*m)
	return &d, nil
}

// FindDishCurrency retrieves only a dish's authoritative currency code.
func (r *PgxDishRepository) FindDishCurrency(ctx context.Context, dishID string) (string, error) {
	var currency string
	err := r.db.QueryRow(ctx, `SELECT currency FROM dishes WHERE dish_id = $1`, dishID).Scan(&currency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFoundError("cannot find dish with id " + dishID)
		}
		return "", apperrors.NewAppError(500, "failed to find dish currency", err)
	}
	return currency, nil
}

// ListDishes retrieves every dish. Used by the canonical-price rebuild when
// the main currency changes.
func (r *PgxDishRepository) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	rows, err := r.db.Query(ctx, `SELECT `+dishColumns+` FROM dishes ORDER BY dish_id`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list dishes", err)
	}
	defer rows.Close()

	var dishes []domain.Dish
	for rows.Next() {
		m, err := scanDish(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan dish", err)
		}
		dishes = append(dishes, mapping.ToDomainDish(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating dishes", err)
	}
	return dishes, nil
}

// buildDishFilterClause renders the WHERE clause for a filter set. Range
// filters arrive already translated onto the canonical main_unit_price axis.
func buildDishFilterClause(filters dto.DishFilters) (string, []any) {
	clause := "WHERE 1=1"
	args := []any{}
	argNum := 1

	addList := func(column string, values []string) {
		if len(values) == 0 {
			return
		}
		clause += fmt.Sprintf(" AND %s = ANY($%d)", column, argNum)
		args = append(args, values)
		argNum++
	}
	addRange := func(column string, rf *dto.RangeFilter) {
		if rf == nil {
			return
		}
		if rf.Min != nil {
			clause += fmt.Sprintf(" AND %s >= $%d", column, argNum)
			args = append(args, *rf.Min)
			argNum++
		}
		if rf.Max != nil {
			clause += fmt.Sprintf(" AND %s <= $%d", column, argNum)
			args = append(args, *rf.Max)
			argNum++
		}
	}

	addList("name", filters.Names)
	addList("category", filters.Categories)
	addList("cuisine", filters.Cuisines)
	addList("type", filters.Types)
	addRange("main_unit_price", filters.MainUnitPrice)
	addRange("stock", filters.Stock)
	addRange("ratings_average", filters.RatingsAverage)
	addRange("ratings_count", filters.RatingsCount)

	return clause, args
}

// AggregateDishes computes the projected page, the matching count and the
// total count as three facets of one batched round trip.
func (r *PgxDishRepository) AggregateDishes(
	ctx context.Context,
	filters dto.DishFilters,
	fields map[string]int,
	pagination dto.Pagination,
) ([]domain.DishView, int, int, error) {
	clause, args := buildDishFilterClause(filters)

	columns := []string{"dish_id"}
	selected := []string{}
	for _, p := range projectable {
		if selectfields.Selected(fields, p.field) {
			columns = append(columns, p.column)
			selected = append(selected, p.field)
		}
	}

	pageArgs := append([]any{}, args...)
	pageQuery := fmt.Sprintf("SELECT %s FROM dishes %s ORDER BY created_at, dish_id",
		strings.Join(columns, ", "), clause)
	if pagination.Limit > 0 {
		pageQuery += fmt.Sprintf(" OFFSET $%d LIMIT $%d", len(pageArgs)+1, len(pageArgs)+2)
		pageArgs = append(pageArgs, pagination.Skip, pagination.Limit)
	}

	batch := &pgx.Batch{}
	batch.Queue(pageQuery, pageArgs...)
	batch.Queue("SELECT COUNT(*) FROM dishes "+clause, args...)
	batch.Queue("SELECT COUNT(*) FROM dishes")

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	rows, err := results.Query()
	if err != nil {
		return nil, 0, 0, apperrors.NewAggregationError("cannot aggregate dishes: " + err.Error())
	}

	var views []domain.DishView
	for rows.Next() {
		view, err := scanDishView(rows, selected)
		if err != nil {
			rows.Close()
			return nil, 0, 0, apperrors.NewAppError(500, "failed to scan dish view", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, apperrors.NewAppError(500, "error iterating dish views", err)
	}
	rows.Close()

	var matchingCount, totalCount int
	if err := results.QueryRow().Scan(&matchingCount); err != nil {
		return nil, 0, 0, apperrors.NewAggregationError("cannot aggregate matching count: " + err.Error())
	}
	if err := results.QueryRow().Scan(&totalCount); err != nil {
		return nil, 0, 0, apperrors.NewAggregationError("cannot aggregate total count: " + err.Error())
	}

	return views, matchingCount, totalCount, nil
}

// scanDishView scans one projected row. dish_id always leads; the remaining
// destinations follow the selected field order.
func scanDishView(rows pgx.Rows, selected []string) (*domain.DishView, error) {
	view := domain.DishView{}
	dest := []any{&view.DishID}
	for _, field := range selected {
		switch field {
		case "name":
			view.Name = new(string)
			dest = append(dest, view.Name)
		case "category":
			view.Category = new(string)
			dest = append(dest, view.Category)
		case "cuisine":
			view.Cuisine = new(string)
			dest = append(dest, view.Cuisine)
		case "type":
			view.Type = new(string)
			dest = append(dest, view.Type)
		case "description":
			view.Description = new(string)
			dest = append(dest, view.Description)
		case "images":
			dest = append(dest, &view.Images)
		case "coverImage":
			view.CoverImage = new(string)
			dest = append(dest, view.CoverImage)
		case "unitPrice":
			view.UnitPrice = new(decimal.Decimal)
			dest = append(dest, view.UnitPrice)
		case "currency":
			view.Currency = new(string)
			dest = append(dest, view.Currency)
		case "mainUnitPrice":
			view.MainUnitPrice = new(decimal.Decimal)
			dest = append(dest, view.MainUnitPrice)
		case "stock":
			view.Stock = new(int)
			dest = append(dest, view.Stock)
		case "ratingsAverage":
			view.RatingsAverage = new(decimal.Decimal)
			dest = append(dest, view.RatingsAverage)
		case "ratingsCount":
			view.RatingsCount = new(int)
			dest = append(dest, view.RatingsCount)
		default:
			return nil, fmt.Errorf("unknown projected field %q", field)
		}
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	return &view, nil
}

// AggregateFilterValues computes deduplicated values for list fields and
// min/max for numeric fields in a single scan over the catalog.
func (r *PgxDishRepository) AggregateFilterValues(ctx context.Context, listFields, minMaxFields []string) (*dto.FilterValues, error) {
	fieldColumn := map[string]string{}
	for _, p := range projectable {
		fieldColumn[p.field] = p.column
	}

	exprs := []string{}
	for _, field := range listFields {
		column, ok := fieldColumn[field]
		if !ok {
			return nil, apperrors.NewValidationError(field + " is not a valid dish filter")
		}
		exprs = append(exprs, fmt.Sprintf("array_agg(DISTINCT %s)", column))
	}
	for _, field := range minMaxFields {
		column, ok := fieldColumn[field]
		if !ok {
			return nil, apperrors.NewValidationError(field + " is not a valid dish filter")
		}
		exprs = append(exprs, fmt.Sprintf("MIN(%s), MAX(%s)", column, column))
	}
	if len(exprs) == 0 {
		return &dto.FilterValues{Lists: map[string][]string{}, Ranges: map[string]dto.MinMax{}}, nil
	}

	query := "SELECT " + strings.Join(exprs, ", ") + " FROM dishes"

	lists := make([][]string, len(listFields))
	mins := make([]*decimal.Decimal, len(minMaxFields))
	maxs := make([]*decimal.Decimal, len(minMaxFields))

	dest := []any{}
	for i := range listFields {
		dest = append(dest, &lists[i])
	}
	for i := range minMaxFields {
		dest = append(dest, &mins[i], &maxs[i])
	}

	if err := r.db.QueryRow(ctx, query).Scan(dest...); err != nil {
		return nil, apperrors.NewAggregationError("cannot aggregate dish filters: " + err.Error())
	}

	result := &dto.FilterValues{Lists: map[string][]string{}, Ranges: map[string]dto.MinMax{}}
	for i, field := range listFields {
		result.Lists[field] = lists[i]
	}
	for i, field := range minMaxFields {
		if mins[i] == nil || maxs[i] == nil {
			return nil, apperrors.NewAggregationError("empty aggregation result for " + field)
		}
		result.Ranges[field] = dto.MinMax{Min: *mins[i], Max: *maxs[i]}
	}
	return result, nil
}

// SaveDish persists a new dish.
func (r *PgxDishRepository) SaveDish(ctx context.Context, dish domain.Dish) error {
	m := mapping.ToModelDish(dish)
	_, err := r.db.Exec(ctx, `
		INSERT INTO dishes (
			dish_id, name, category, cuisine, type, description, images, cover_image,
			unit_price, currency, main_unit_price, stock, ratings_average, ratings_count,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		m.DishID, m.Name, m.Category, m.Cuisine, m.Type, m.Description, m.Images, m.CoverImage,
		m.UnitPrice, m.Currency, m.MainUnitPrice, m.Stock, m.RatingsAverage, m.RatingsCount,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save dish", err)
	}
	return nil
}

// UpdateDish overwrites a dish row.
func (r *PgxDishRepository) UpdateDish(ctx context.Context, dish domain.Dish) error {
	m := mapping.ToModelDish(dish)
	tag, err := r.db.Exec(ctx, `
		UPDATE dishes SET
			name = $1, category = $2, cuisine = $3, type = $4, description = $5,
			images = $6, cover_image = $7, unit_price = $8, currency = $9,
			main_unit_price = $10, stock = $11, ratings_average = $12, ratings_count = $13,
			last_updated_at = $14, last_updated_by = $15
		WHERE dish_id = $16`,
		m.Name, m.Category, m.Cuisine, m.Type, m.Description,
		m.Images, m.CoverImage, m.UnitPrice, m.Currency,
		m.MainUnitPrice, m.Stock, m.RatingsAverage, m.RatingsCount,
		m.LastUpdatedAt, m.LastUpdatedBy, m.DishID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update dish", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("cannot update dish with id " + dish.DishID)
	}
	return nil
}

// UpdateMainUnitPrice rewrites only the canonical price axis of a dish.
func (r *PgxDishRepository) UpdateMainUnitPrice(ctx context.Context, dishID string, mainUnitPrice decimal.Decimal) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE dishes SET main_unit_price = $1 WHERE dish_id = $2`,
		mainUnitPrice, dishID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update canonical dish price", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("cannot find dish with id " + dishID)
	}
	return nil
}

// DeleteDish removes a dish.
func (r *PgxDishRepository) DeleteDish(ctx context.Context, dishID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM dishes WHERE dish_id = $1`, dishID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete dish", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("cannot delete dish with id " + dishID)
	}
	return nil
}

// DecrementStock atomically subtracts quantity when stock suffices. The
// condition lives in the statement itself so two concurrent orders cannot
// both take the last unit.
func (r *PgxDishRepository) DecrementStock(ctx context.Context, dishID string, quantity int) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE dishes SET stock = stock - $1 WHERE dish_id = $2 AND stock >= $1`,
		quantity, dishID,
	)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to decrement dish stock", err)
	}
	return tag.RowsAffected() > 0, nil
}
