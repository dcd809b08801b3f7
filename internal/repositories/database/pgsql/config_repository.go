package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feastly/feastly_backend/internal/apperrors"
	"github.com/feastly/feastly_backend/internal/core/domain"
	portsrepo "github.com/feastly/feastly_backend/internal/core/ports/repositories"
	"github.com/feastly/feastly_backend/internal/models"
	"github.com/feastly/feastly_backend/internal/utils/mapping"
)

// PgxConfigRepository implements the platform config store using pgxpool.
// The config table holds exactly one row.
type PgxConfigRepository struct {
	BaseRepository
}

// newPgxConfigRepository creates a new PgxConfigRepository.
func newPgxConfigRepository(pool *pgxpool.Pool) *PgxConfigRepository {
	return &PgxConfigRepository{BaseRepository: newBaseRepository(pool)}
}

// Ensure PgxConfigRepository implements the WithTx port
var _ portsrepo.ConfigRepositoryWithTx = (*PgxConfigRepository)(nil)

// WithTx returns a repository facade bound to the given transaction session.
func (r *PgxConfigRepository) WithTx(tx pgx.Tx) portsrepo.ConfigRepositoryFacade {
	return &PgxConfigRepository{BaseRepository: r.BaseRepository.withTx(tx)}
}

// GetConfig retrieves the config singleton.
func (r *PgxConfigRepository) GetConfig(ctx context.Context) (*domain.Config, error) {
	var m models.Config
	err := r.db.QueryRow(ctx, `
		SELECT config_id, main_currency, created_at, created_by, last_updated_at, last_updated_by
		FROM config LIMIT 1`).Scan(
		&m.ConfigID, &m.MainCurrency,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("platform config is not initialized")
		}
		return nil, apperrors.NewAppError(500, "failed to get config", err)
	}
	cfg := mapping.ToDomainConfig(m)
	return &cfg, nil
}

// SaveConfig updates the config singleton.
func (r *PgxConfigRepository) SaveConfig(ctx context.Context, cfg domain.Config) error {
	m := mapping.ToModelConfig(cfg)
	tag, err := r.db.Exec(ctx, `
		UPDATE config SET main_currency = $1, last_updated_at = $2, last_updated_by = $3
		WHERE config_id = $4`,
		m.MainCurrency, m.LastUpdatedAt, m.LastUpdatedBy, m.ConfigID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save config", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("platform config is not initialized")
	}
	return nil
}
