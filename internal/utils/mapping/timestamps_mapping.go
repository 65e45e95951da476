package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelTimestamps converts domain Timestamps to model Timestamps
func ToModelTimestamps(d domain.Timestamps) models.Timestamps {
	return models.Timestamps{
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// ToDomainTimestamps converts model Timestamps to domain Timestamps
func ToDomainTimestamps(m models.Timestamps) domain.Timestamps {
	return domain.Timestamps{
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToModelMetadata converts domain metadata, never returning nil so the column stays '{}'.
func ToModelMetadata(d domain.Metadata) models.Metadata {
	return models.Metadata(d.OrEmpty())
}

// ToDomainMetadata converts a decoded jsonb column.
func ToDomainMetadata(m models.Metadata) domain.Metadata {
	return domain.Metadata(m).OrEmpty()
}
