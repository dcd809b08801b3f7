package mapping

import (
	"github.com/feastly/feastly_backend/internal/core/domain"
	"github.com/feastly/feastly_backend/internal/models"
)

// ToModelConfig converts a domain Config to a model Config
func ToModelConfig(d domain.Config) models.Config {
	return models.Config{
		ConfigID:     d.ConfigID,
		MainCurrency: d.MainCurrency,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainConfig converts a model Config to a domain Config
func ToDomainConfig(m models.Config) domain.Config {
	return domain.Config{
		ConfigID:     m.ConfigID,
		MainCurrency: m.MainCurrency,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
