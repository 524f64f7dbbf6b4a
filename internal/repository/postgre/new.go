package postgre

import (
	"context"
	"database/sql"
	"fmt"

	"mergebot/internal/repository"
	"mergebot/pkg/log"
)

// dbtx is the subset of *sql.DB and *sql.Tx the queries need, so the
// same implementation serves both transactional and plain access.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type implRepository struct {
	db   *sql.DB // nil inside a transaction
	conn dbtx
	l    log.Logger
}

// New creates a new PostgreSQL-backed Repository.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("repository/postgre: db is required")
	}
	return &implRepository{db: db, conn: db, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("repository/postgre.%s", method)
}

// WithTransaction runs fn against a transactional copy of the repository.
// Nested calls reuse the already-open transaction.
func (r *implRepository) WithTransaction(ctx context.Context, fn func(repository.Repository) error) error {
	if r.db == nil {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("WithTransaction"), err)
		return repository.ErrFailedToBegin
	}

	txRepo := &implRepository{conn: tx, l: r.l}
	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.l.Errorf(ctx, "%s rollback: %v", r.dsn("WithTransaction"), rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("WithTransaction"), err)
		return repository.ErrFailedToCommit
	}
	return nil
}
