package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/feastly/feastly_backend/internal/core/domain"
)

// ConfigReader defines read operations for the config singleton
type ConfigReader interface {
	// GetConfig retrieves the config row; ErrNotFound when the singleton is missing.
	GetConfig(ctx context.Context) (*domain.Config, error)
}

// ConfigWriter defines write operations for the config singleton
type ConfigWriter interface {
	// SaveConfig updates the config row; ErrNotFound when the singleton is missing.
	SaveConfig(ctx context.Context, cfg domain.Config) error
}

// ConfigRepositoryFacade combines the config repository interfaces
type ConfigRepositoryFacade interface {
	ConfigReader
	ConfigWriter
}

// ConfigRepositoryWithTx extends ConfigRepositoryFacade with transaction capabilities
type ConfigRepositoryWithTx interface {
	ConfigRepositoryFacade
	TransactionManager

	// WithTx returns a facade bound to the given transaction session.
	WithTx(tx pgx.Tx) ConfigRepositoryFacade
}
