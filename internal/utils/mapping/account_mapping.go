package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelAccount converts a domain LedgerAccount to a model Account
func ToModelAccount(d domain.LedgerAccount) models.Account {
	return models.Account{
		ID:             d.ID,
		OrganizationID: d.OrganizationID,
		Code:           d.Code,
		Name:           d.Name,
		AccountType:    models.AccountType(d.Type),
		TaxonomyCode:   d.TaxonomyCode,
		Currency:       d.Currency,
		Metadata:       ToModelMetadata(d.Metadata),
		Timestamps:     ToModelTimestamps(d.Timestamps),
	}
}

// ToDomainAccount converts a model Account to a domain LedgerAccount
func ToDomainAccount(m models.Account) domain.LedgerAccount {
	return domain.LedgerAccount{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Code:           m.Code,
		Name:           m.Name,
		Type:           domain.ParseAccountType(string(m.AccountType)),
		TaxonomyCode:   m.TaxonomyCode,
		Currency:       m.Currency,
		Metadata:       ToDomainMetadata(m.Metadata),
		Timestamps:     ToDomainTimestamps(m.Timestamps),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.LedgerAccount {
	ds := make([]domain.LedgerAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
