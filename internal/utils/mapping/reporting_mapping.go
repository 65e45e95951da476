package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToDomainTrialBalanceRow converts an aggregated row; Balance is debit minus credit.
func ToDomainTrialBalanceRow(m models.TrialBalanceRow) domain.TrialBalanceRow {
	return domain.TrialBalanceRow{
		AccountID:   m.AccountID,
		AccountCode: m.AccountCode,
		AccountName: m.AccountName,
		AccountType: domain.ParseAccountType(string(m.AccountType)),
		Currency:    m.Currency,
		TotalDebit:  m.TotalDebit,
		TotalCredit: m.TotalCredit,
		Balance:     m.TotalDebit.Sub(m.TotalCredit),
	}
}
