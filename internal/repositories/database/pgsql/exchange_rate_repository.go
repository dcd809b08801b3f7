package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feastly/feastly_backend/internal/apperrors"
	"github.com/feastly/feastly_backend/internal/core/domain"
	portsrepo "github.com/feastly/feastly_backend/internal/core/ports/repositories"
	"github.com/feastly/feastly_backend/internal/models"
	"github.com/feastly/feastly_backend/internal/utils/mapping"
)

// PgxExchangeRateRepository implements the exchange rate store using pgxpool.
// Only paired mutations are exposed: both legs of a pair are written by the
// same call, on the same session.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{BaseRepository: newBaseRepository(pool)}
}

// Ensure PgxExchangeRateRepository implements the WithTx port
var _ portsrepo.ExchangeRateRepositoryWithTx = (*PgxExchangeRateRepository)(nil)

// WithTx returns a repository facade bound to the given transaction session.
func (r *PgxExchangeRateRepository) WithTx(tx pgx.Tx) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{BaseRepository: r.BaseRepository.withTx(tx)}
}

// FindRate retrieves the directed rate between two currencies. No inference
// through a third currency is attempted: the inverse leg exists as its own
// row by the pair invariant.
func (r *PgxExchangeRateRepository) FindRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	fromCurrency := strings.ToUpper(fromCurrencyCode)
	toCurrency := strings.ToUpper(toCurrencyCode)

	query := `
		SELECT from_currency, to_currency, rate,
			created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2;
	`

	var modelRate models.ExchangeRate
	err := r.db.QueryRow(ctx, query, fromCurrency, toCurrency).Scan(
		&modelRate.FromCurrencyCode, &modelRate.ToCurrencyCode, &modelRate.Rate,
		&modelRate.CreatedAt, &modelRate.CreatedBy, &modelRate.LastUpdatedAt, &modelRate.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("cannot find exchange rate from " + fromCurrency + " to " + toCurrency)
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// SaveRatePair inserts both legs of a new pair on the repository session.
func (r *PgxExchangeRateRepository) SaveRatePair(ctx context.Context, pair domain.RatePair) error {
	for _, leg := range []domain.ExchangeRate{pair.Rate, pair.Inverse} {
		modelRate := mapping.ToModelExchangeRate(leg)
		_, err := r.db.Exec(ctx, `
			INSERT INTO exchange_rates (
				from_currency, to_currency, rate,
				created_at, created_by, last_updated_at, last_updated_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			strings.ToUpper(modelRate.FromCurrencyCode), strings.ToUpper(modelRate.ToCurrencyCode),
			modelRate.Rate, modelRate.CreatedAt, modelRate.CreatedBy,
			modelRate.LastUpdatedAt, modelRate.LastUpdatedBy,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return apperrors.NewDuplicateError(fmt.Sprintf("exchange rate from %s to %s already exists",
					leg.FromCurrencyCode, leg.ToCurrencyCode))
			}
			return apperrors.NewAppError(500, "failed to save exchange rate pair", err)
		}
	}
	return nil
}

// UpdateRatePair updates both legs of an existing pair; either leg missing
// fails the whole mutation.
func (r *PgxExchangeRateRepository) UpdateRatePair(ctx context.Context, pair domain.RatePair) error {
	for _, leg := range []domain.ExchangeRate{pair.Rate, pair.Inverse} {
		tag, err := r.db.Exec(ctx, `
			UPDATE exchange_rates
			SET rate = $1, last_updated_at = $2, last_updated_by = $3
			WHERE from_currency = $4 AND to_currency = $5`,
			leg.Rate, leg.LastUpdatedAt, leg.LastUpdatedBy,
			strings.ToUpper(leg.FromCurrencyCode), strings.ToUpper(leg.ToCurrencyCode),
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update exchange rate pair", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError(fmt.Sprintf("cannot find exchange rate from %s to %s",
				leg.FromCurrencyCode, leg.ToCurrencyCode))
		}
	}
	return nil
}

// DeleteRatePair deletes both legs; either delete affecting zero rows fails
// the whole mutation.
func (r *PgxExchangeRateRepository) DeleteRatePair(ctx context.Context, fromCurrencyCode, toCurrencyCode string) error {
	fromCurrency := strings.ToUpper(fromCurrencyCode)
	toCurrency := strings.ToUpper(toCurrencyCode)

	legs := [][2]string{{fromCurrency, toCurrency}, {toCurrency, fromCurrency}}
	for _, leg := range legs {
		tag, err := r.db.Exec(ctx,
			`DELETE FROM exchange_rates WHERE from_currency = $1 AND to_currency = $2`,
			leg[0], leg[1],
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to delete exchange rate pair", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError(fmt.Sprintf("cannot delete exchange rate from %s to %s",
				fromCurrency, toCurrency))
		}
	}
	return nil
}

// ListCurrencyCodes retrieves the distinct currency codes appearing as the
// from leg of any stored rate. The pair invariant makes the from legs cover
// every rated currency.
func (r *PgxExchangeRateRepository) ListCurrencyCodes(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT from_currency FROM exchange_rates ORDER BY from_currency`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list currency codes", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan currency code", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating currency codes", err)
	}
	return codes, nil
}

// ListRates retrieves rate legs with optional filtering and the total count.
func (r *PgxExchangeRateRepository) ListRates(
	ctx context.Context,
	fromCurrency, toCurrency *string,
	page, pageSize int,
) ([]domain.ExchangeRate, int, error) {
	baseQuery := `FROM exchange_rates WHERE 1=1`
	args := []any{}
	argNum := 1

	if fromCurrency != nil {
		baseQuery += fmt.Sprintf(" AND from_currency = $%d", argNum)
		args = append(args, strings.ToUpper(*fromCurrency))
		argNum++
	}

	if toCurrency != nil {
		baseQuery += fmt.Sprintf(" AND to_currency = $%d", argNum)
		args = append(args, strings.ToUpper(*toCurrency))
		argNum++
	}

	var total int
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count exchange rates", err)
	}

	if total == 0 {
		return []domain.ExchangeRate{}, 0, nil
	}

	baseQuery += " ORDER BY from_currency, to_currency"
	if pageSize > 0 {
		offset := (page - 1) * pageSize
		baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
		args = append(args, pageSize, offset)
	}

	listQuery := `SELECT from_currency, to_currency, rate,
		created_at, created_by, last_updated_at, last_updated_by ` + baseQuery

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list exchange rates", err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		var modelRate models.ExchangeRate
		err := rows.Scan(
			&modelRate.FromCurrencyCode, &modelRate.ToCurrencyCode, &modelRate.Rate,
			&modelRate.CreatedAt, &modelRate.CreatedBy, &modelRate.LastUpdatedAt, &modelRate.LastUpdatedBy,
		)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan exchange rate", err)
		}
		rates = append(rates, mapping.ToDomainExchangeRate(modelRate))
	}

	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating exchange rates", err)
	}

	return rates, total, nil
}
