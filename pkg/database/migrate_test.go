package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/SscSPs/ledger_engine/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations_RejectsBadInput(t *testing.T) {
	_, err := RunMigrations("", MigrateUp, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL cannot be empty")

	_, err = RunMigrations("postgres://localhost/ledger", MigrationDirection("sideways"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown migration direction "sideways"`)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, name := range names {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file %s", name)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestSchemaMigrationDeclaresNodeShape(t *testing.T) {
	body, err := fs.ReadFile(migrations.FS, "000001_ledger_schema.up.sql")
	require.NoError(t, err)
	schema := string(body)

	for _, table := range []string{"ledger.organizations", "ledger.taxonomy_nodes", "ledger.accounts", "ledger.entries", "ledger.entry_lines"} {
		assert.Contains(t, schema, "CREATE TABLE "+table)
	}
	assert.Contains(t, schema, "entry_lines_node_shape")
	assert.Contains(t, schema, "UNIQUE (organization_id, code)")
}

func TestNewPgxPool_EmptyURL(t *testing.T) {
	_, err := NewPgxPool(t.Context(), "", false)
	require.Error(t, err)
}
