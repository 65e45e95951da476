package models

// Organization is a row of ledger.organizations.
type Organization struct {
	ID       int64    `db:"id"`
	Code     string   `db:"code"`
	Name     string   `db:"name"`
	ParentID *int64   `db:"parent_id"`
	Path     string   `db:"path"`
	Currency string   `db:"currency"`
	Metadata Metadata `db:"metadata"`
	Timestamps
}
