package services

import (
	"context"

	"github.com/feastly/feastly_backend/internal/core/domain"
)

// ConfigSvcFacade manages the configuration singleton. The pricing core only
// reads it; UpdateConfig exists for the administrative surface.
type ConfigSvcFacade interface {
	// GetConfig retrieves the config singleton.
	GetConfig(ctx context.Context) (*domain.Config, error)

	// UpdateConfig changes the main currency and rebuilds every dish's
	// canonical price against the new pivot, atomically.
	UpdateConfig(ctx context.Context, mainCurrency string, updaterUserID string) (*domain.Config, error)
}
