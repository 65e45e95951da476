package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/SscSPs/ledger_engine/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	organizationsTable = "ledger.organizations"
	accountsTable      = "ledger.accounts"
	taxonomyTable      = "ledger.taxonomy_nodes"
	entriesTable       = "ledger.entries"
	entryLinesTable    = "ledger.entry_lines"
)

// Querier is satisfied by both the pool and an open transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txKey is the context key for the active transaction.
type txKey struct{}

// TxManager stores an open transaction in the context so that repositories
// called inside RunInTransaction join it.
type TxManager struct {
	pool             *pgxpool.Pool
	statementTimeout time.Duration
}

// NewTxManager creates a transaction manager. A positive statementTimeout is applied
// with SET LOCAL to every transaction it opens.
func NewTxManager(pool *pgxpool.Pool, statementTimeout time.Duration) *TxManager {
	return &TxManager{pool: pool, statementTimeout: statementTimeout}
}

var _ portsrepo.TransactionManager = (*TxManager)(nil)

// RunInTransaction executes fn within a transaction. A transaction already present
// in ctx is reused, so nested calls commit or roll back with the outermost one.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite})
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}

	if m.statementTimeout > 0 {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", m.statementTimeout.Milliseconds())); err != nil {
			_ = tx.Rollback(context.Background())
			return apperrors.NewAppError(http.StatusInternalServerError, "failed to set statement timeout", err)
		}
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		// the caller's context may already be cancelled
		if rbErr := tx.Rollback(context.Background()); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	return nil
}

// GetQuerier returns the transaction carried by ctx, or the pool.
func (m *TxManager) GetQuerier(ctx context.Context) Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return m.pool
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	tm *TxManager
}

// querier returns the connection the current call should use.
func (r *BaseRepository) querier(ctx context.Context) Querier {
	return r.tm.GetQuerier(ctx)
}

// builder returns a squirrel builder with PostgreSQL placeholders.
func (r *BaseRepository) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// mapWriteError turns constraint violations into ErrIntegrity and wraps everything else.
func mapWriteError(err error, action string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503", "23505", "23514":
			return fmt.Errorf("%w: %s violates %s (%s)", apperrors.ErrIntegrity, action, pgErr.ConstraintName, pgErr.Message)
		}
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

// prefixed qualifies columns with a table alias.
func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}
