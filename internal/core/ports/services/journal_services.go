package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntry retrieves an entry with its lines ordered by path.
	GetEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// ListEntries retrieves the latest entries of an organization with computed totals.
	ListEntries(ctx context.Context, organizationID int64, limit int) ([]domain.EntrySummary, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// CreateEntry validates, balances and atomically persists a new entry.
	// actorID is recorded as the entry's creator when non-nil.
	CreateEntry(ctx context.Context, organizationID int64, req dto.CreateEntryRequest, actorID *string) (*domain.JournalEntry, error)

	// PostEntry transitions an entry to posted and stamps posted_at.
	PostEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
