package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelTaxonomyNode converts a domain TaxonomyNode to a model TaxonomyNode
func ToModelTaxonomyNode(d domain.TaxonomyNode) models.TaxonomyNode {
	return models.TaxonomyNode{
		Code:          d.Code,
		Title:         d.Title,
		TitleEn:       d.TitleEn,
		Level:         d.Level,
		ParentCode:    d.ParentCode,
		AccountType:   models.AccountType(d.AccountType),
		FunctionLabel: d.FunctionLabel,
		IsPostable:    d.IsPostable,
		VersionTag:    d.VersionTag,
		Timestamps:    models.Timestamps{UpdatedAt: d.UpdatedAt},
	}
}

// ToDomainTaxonomyNode converts a model TaxonomyNode to a domain TaxonomyNode
func ToDomainTaxonomyNode(m models.TaxonomyNode) domain.TaxonomyNode {
	return domain.TaxonomyNode{
		Code:          m.Code,
		Title:         m.Title,
		TitleEn:       m.TitleEn,
		Level:         m.Level,
		ParentCode:    m.ParentCode,
		AccountType:   domain.ParseAccountType(string(m.AccountType)),
		FunctionLabel: m.FunctionLabel,
		IsPostable:    m.IsPostable,
		VersionTag:    m.VersionTag,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToDomainTaxonomyNodeSlice converts a slice of model TaxonomyNodes
func ToDomainTaxonomyNodeSlice(ms []models.TaxonomyNode) []domain.TaxonomyNode {
	ds := make([]domain.TaxonomyNode, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTaxonomyNode(m)
	}
	return ds
}
