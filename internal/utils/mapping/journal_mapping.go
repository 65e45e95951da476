package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelEntry converts a domain JournalEntry to a model Entry
func ToModelEntry(d domain.JournalEntry) models.Entry {
	return models.Entry{
		ID:                d.ID,
		OrganizationID:    d.OrganizationID,
		EntryDate:         d.EntryDate,
		Status:            models.EntryStatus(d.Status),
		Reference:         d.Reference,
		Description:       d.Description,
		Currency:          d.Currency,
		ExchangeRate:      d.ExchangeRate,
		InterCompanyOrgID: d.InterCompanyOrgID,
		Metadata:          ToModelMetadata(d.Metadata),
		PostedAt:          d.PostedAt,
		CreatedBy:         d.CreatedBy,
		Timestamps:        ToModelTimestamps(d.Timestamps),
	}
}

// ToDomainEntry converts a model Entry to a domain JournalEntry
func ToDomainEntry(m models.Entry) domain.JournalEntry {
	return domain.JournalEntry{
		ID:                m.ID,
		OrganizationID:    m.OrganizationID,
		EntryDate:         m.EntryDate,
		Status:            domain.EntryStatus(m.Status),
		Reference:         m.Reference,
		Description:       m.Description,
		Currency:          m.Currency,
		ExchangeRate:      m.ExchangeRate,
		InterCompanyOrgID: m.InterCompanyOrgID,
		Metadata:          ToDomainMetadata(m.Metadata),
		PostedAt:          m.PostedAt,
		CreatedBy:         m.CreatedBy,
		Timestamps:        ToDomainTimestamps(m.Timestamps),
	}
}

// ToDomainEntrySummary converts a listed entry row with its totals
func ToDomainEntrySummary(m models.EntrySummary) domain.EntrySummary {
	return domain.EntrySummary{
		JournalEntry: ToDomainEntry(m.Entry),
		TotalDebit:   m.TotalDebit,
		TotalCredit:  m.TotalCredit,
		Balance:      m.TotalDebit.Sub(m.TotalCredit),
	}
}

// ToModelEntryLine converts a domain EntryLine to a model EntryLine
func ToModelEntryLine(d domain.EntryLine) models.EntryLine {
	m := models.EntryLine{
		ID:              d.ID,
		EntryID:         d.EntryID,
		OrganizationID:  d.OrganizationID,
		NodeKind:        string(d.NodeKind),
		Path:            d.Path,
		AccountID:       d.AccountID,
		AccountCode:     d.AccountCode,
		AccountName:     d.AccountName,
		Amount:          d.Amount,
		Quantity:        d.Quantity,
		TaxonomyCode:    d.TaxonomyCode,
		Description:     d.Description,
		Metadata:        ToModelMetadata(d.Metadata),
		RequireBalanced: d.RequireBalanced,
	}
	if d.Direction != nil {
		direction := string(*d.Direction)
		m.Direction = &direction
	}
	return m
}

// ToDomainEntryLine converts a model EntryLine to a domain EntryLine
func ToDomainEntryLine(m models.EntryLine) domain.EntryLine {
	d := domain.EntryLine{
		ID:              m.ID,
		EntryID:         m.EntryID,
		OrganizationID:  m.OrganizationID,
		NodeKind:        domain.NodeKind(m.NodeKind),
		Path:            m.Path,
		AccountID:       m.AccountID,
		AccountCode:     m.AccountCode,
		AccountName:     m.AccountName,
		Amount:          m.Amount,
		Quantity:        m.Quantity,
		TaxonomyCode:    m.TaxonomyCode,
		Description:     m.Description,
		Metadata:        ToDomainMetadata(m.Metadata),
		RequireBalanced: m.RequireBalanced,
	}
	if m.Direction != nil {
		direction := domain.Direction(*m.Direction)
		d.Direction = &direction
	}
	return d
}

// ToDomainEntryLineSlice converts a slice of model EntryLines
func ToDomainEntryLineSlice(ms []models.EntryLine) []domain.EntryLine {
	ds := make([]domain.EntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntryLine(m)
	}
	return ds
}
