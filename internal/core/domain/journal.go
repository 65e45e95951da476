package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	StatusDraft  EntryStatus = "draft"
	StatusPosted EntryStatus = "posted"
	StatusVoid   EntryStatus = "void"
)

// ParseEntryStatus normalizes s; empty input yields draft. ok is false for unknown statuses.
func ParseEntryStatus(s string) (EntryStatus, bool) {
	switch st := EntryStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StatusDraft, true
	case StatusDraft, StatusPosted, StatusVoid:
		return st, true
	}
	return "", false
}

// Direction indicates whether a line is a debit or a credit.
type Direction string

const (
	Debit  Direction = "debit"
	Credit Direction = "credit"
)

// ParseDirection normalizes s case-insensitively. ok is false when s is neither debit nor credit.
func ParseDirection(s string) (Direction, bool) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Debit, Credit:
		return d, true
	}
	return "", false
}

// NodeKind discriminates the nodes of an entry's line tree.
type NodeKind string

const (
	NodeGroup NodeKind = "group"
	NodeLine  NodeKind = "line"
)

// BalanceEpsilon is the largest absolute debit/credit difference accepted for an entry.
var BalanceEpsilon = decimal.New(1, -AmountScale)

// DefaultGroupDescription labels the root group node when the entry has no description.
const DefaultGroupDescription = "Batch"

const rootPathPrefix = "root"

// GroupPath is the path of the entry's single top-level group node.
func GroupPath() string {
	return PathSegment(rootPathPrefix, 1)
}

// MaxEntryLines caps the posting lines of one entry. Line path segments are four digits wide.
const MaxEntryLines = 1000

// LinePath is the path of the n-th (1-based) posting line below the group node.
func LinePath(n int) string {
	return PathSegment(GroupPath(), n)
}

// PathSegment appends a zero-padded ordinal to parent.
func PathSegment(parent string, ordinal int) string {
	return fmt.Sprintf("%s.%04d", parent, ordinal)
}

// IsDirectChild reports whether path is exactly one segment below parent.
func IsDirectChild(parent, path string) bool {
	rest, ok := strings.CutPrefix(path, parent+".")
	return ok && rest != "" && !strings.Contains(rest, ".")
}

// SignedAmount returns +amount for debits and -amount for credits.
func SignedAmount(direction Direction, amount decimal.Decimal) decimal.Decimal {
	if direction == Credit {
		return amount.Neg()
	}
	return amount
}

// IsBalanced reports whether an accumulated signed delta is within BalanceEpsilon of zero.
func IsBalanced(delta decimal.Decimal) bool {
	return delta.Abs().LessThanOrEqual(BalanceEpsilon)
}

// JournalEntry is a dated financial event made of balanced lines.
type JournalEntry struct {
	ID                int64           `json:"id"`
	OrganizationID    int64           `json:"organization_id"`
	EntryDate         time.Time       `json:"entry_date"`
	Status            EntryStatus     `json:"status"`
	Reference         *string         `json:"reference"`
	Description       *string         `json:"description"`
	Currency          string          `json:"currency"`
	ExchangeRate      decimal.Decimal `json:"exchange_rate"`
	InterCompanyOrgID *int64          `json:"intercompany_org_id"`
	Metadata          Metadata        `json:"metadata"`
	PostedAt          *time.Time      `json:"posted_at"`
	CreatedBy         *string         `json:"created_by"`
	Lines             []EntryLine     `json:"lines,omitempty"`
	Timestamps
}

// EntryLine is one node in an entry's line tree: the root group or a posting line.
type EntryLine struct {
	ID              int64            `json:"id"`
	EntryID         int64            `json:"entry_id"`
	OrganizationID  int64            `json:"organization_id"`
	NodeKind        NodeKind         `json:"node_kind"`
	Path            string           `json:"path"`
	AccountID       *int64           `json:"account_id"`
	AccountCode     *string          `json:"account_code,omitempty"`
	AccountName     *string          `json:"account_name,omitempty"`
	Direction       *Direction       `json:"direction"`
	Amount          *decimal.Decimal `json:"amount"`
	Quantity        *decimal.Decimal `json:"quantity"`
	TaxonomyCode    *string          `json:"taxonomy_code"`
	Description     *string          `json:"description"`
	Metadata        Metadata         `json:"metadata"`
	RequireBalanced bool             `json:"require_balanced"`
}

// EntryTotals sums the posting lines of an entry. Group nodes are ignored.
func EntryTotals(lines []EntryLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		if l.NodeKind != NodeLine || l.Amount == nil || l.Direction == nil {
			continue
		}
		if *l.Direction == Debit {
			debit = debit.Add(*l.Amount)
		} else {
			credit = credit.Add(*l.Amount)
		}
	}
	return debit, credit
}

// EntrySummary is a listed entry annotated with its line totals.
type EntrySummary struct {
	JournalEntry
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balance     decimal.Decimal `json:"balance"`
}
