package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelOrganization converts a domain Organization to a model Organization
func ToModelOrganization(d domain.Organization) models.Organization {
	return models.Organization{
		ID:         d.ID,
		Code:       d.Code,
		Name:       d.Name,
		ParentID:   d.ParentID,
		Path:       d.Path,
		Currency:   d.Currency,
		Metadata:   ToModelMetadata(d.Metadata),
		Timestamps: ToModelTimestamps(d.Timestamps),
	}
}

// ToDomainOrganization converts a model Organization to a domain Organization
func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		ID:         m.ID,
		Code:       m.Code,
		Name:       m.Name,
		ParentID:   m.ParentID,
		Path:       m.Path,
		Currency:   m.Currency,
		Metadata:   ToDomainMetadata(m.Metadata),
		Timestamps: ToDomainTimestamps(m.Timestamps),
	}
}

// ToDomainOrganizationSlice converts a slice of model Organizations
func ToDomainOrganizationSlice(ms []models.Organization) []domain.Organization {
	ds := make([]domain.Organization, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrganization(m)
	}
	return ds
}
