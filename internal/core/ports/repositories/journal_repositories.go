package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// JournalReader defines read operations for journal entry data
type JournalReader interface {
	// FindEntryByID retrieves an entry header by its identifier.
	FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// ListEntries retrieves the latest entries of an organization (entry date desc, id desc)
	// with totals computed over line nodes.
	ListEntries(ctx context.Context, organizationID int64, limit int) ([]domain.EntrySummary, error)
}

// EntryLineReader defines read operations for entry line data
type EntryLineReader interface {
	// FindLinesByEntryID retrieves the line tree of an entry ordered by path.
	FindLinesByEntryID(ctx context.Context, entryID int64) ([]domain.EntryLine, error)
}

// JournalWriter defines write operations for journal entry data
type JournalWriter interface {
	// SaveEntry inserts the entry header followed by its line nodes and returns the new entry id.
	// Callers run it inside a transaction so header and lines commit together.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) (int64, error)

	// MarkEntryPosted sets status to posted and stamps posted_at.
	MarkEntryPosted(ctx context.Context, entryID int64) (*domain.JournalEntry, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	EntryLineReader
	JournalWriter
}
