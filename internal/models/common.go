package models

import "time"

// Timestamps are the row timestamps shared by every ledger table.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Metadata is the decoded form of a jsonb metadata column.
type Metadata map[string]any
