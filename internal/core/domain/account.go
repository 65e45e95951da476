package domain

import (
	"strings"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Revenue   AccountType = "revenue"
	Expense   AccountType = "expense"
	Memo      AccountType = "memo" // informational, not postable
)

// AccountTypes lists every valid account type.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense, Memo}

// ParseAccountType maps free input onto one of the enumerated types, defaulting to Memo.
func ParseAccountType(s string) AccountType {
	t := AccountType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AccountTypes {
		if t == known {
			return t
		}
	}
	return Memo
}

// IsPostable reports whether lines may be posted against an account of this type.
func (t AccountType) IsPostable() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Nature is the side on which an account type normally carries its balance.
type Nature string

const (
	NatureDebit  Nature = "debit"
	NatureCredit Nature = "credit"
	NatureNone   Nature = "none"
)

// Nature returns the normal balance side of the account type.
func (t AccountType) Nature() Nature {
	switch t {
	case Asset, Expense:
		return NatureDebit
	case Liability, Equity, Revenue:
		return NatureCredit
	}
	return NatureNone
}

// accountTypeKeyword is one rule of the taxonomy type classifier.
type accountTypeKeyword struct {
	needles []string
	result  AccountType
}

// accountTypeKeywords is evaluated top to bottom; the first rule with a matching needle wins.
// The last two rules are broad fallbacks for balance-sheet and result-account wording.
var accountTypeKeywords = []accountTypeKeyword{
	{needles: []string{"activa", "asset"}, result: Asset},
	{needles: []string{"passiva", "liabil"}, result: Liability},
	{needles: []string{"vermogen", "equity"}, result: Equity},
	{needles: []string{"opbrengst", "revenue", "omzet"}, result: Revenue},
	{needles: []string{"kosten", "expense"}, result: Expense},
	{needles: []string{"balans"}, result: Asset},
	{needles: []string{"result"}, result: Expense},
}

// AccountTypeFromKeywords classifies free-text (Dutch or English) type descriptions.
func AccountTypeFromKeywords(text string) AccountType {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return Memo
	}
	for _, rule := range accountTypeKeywords {
		for _, needle := range rule.needles {
			if strings.Contains(normalized, needle) {
				return rule.result
			}
		}
	}
	return Memo
}

// AccountTypeFromCode infers a type from a taxonomy code prefix:
// B (balance sheet) implies asset, W (profit and loss) implies expense.
func AccountTypeFromCode(code string) AccountType {
	code = strings.TrimSpace(code)
	if code == "" {
		return Memo
	}
	switch strings.ToUpper(code[:1]) {
	case "B":
		return Asset
	case "W":
		return Expense
	}
	return Memo
}

// LedgerAccount is a per-organization account that lines are posted against.
type LedgerAccount struct {
	ID             int64       `json:"id"`
	OrganizationID int64       `json:"organization_id"`
	Code           string      `json:"code"`
	Name           string      `json:"name"`
	Type           AccountType `json:"account_type"`
	TaxonomyCode   *string     `json:"taxonomy_code"`
	Currency       string      `json:"currency"`
	Metadata       Metadata    `json:"metadata"`
	Timestamps
}
