// Package migrations embeds the SQL schema migrations of the ledger schema.
package migrations

import "embed"

// FS holds the golang-migrate up/down files.
//
//go:embed *.sql
var FS embed.FS
