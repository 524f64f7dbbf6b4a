package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"mergebot/internal/model"
	repo "mergebot/internal/repository"
)

// CreateInstallation inserts a new Installation row.
func (r *implRepository) CreateInstallation(ctx context.Context, opt repo.CreateInstallationOptions) (model.Installation, error) {
	const query = `
		INSERT INTO installations (xref)
		VALUES ($1)
		RETURNING id, xref`

	var ins model.Installation
	err := r.conn.QueryRowContext(ctx, query, opt.Xref).Scan(&ins.ID, &ins.Xref)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateInstallation"), err)
		return model.Installation{}, repo.ErrFailedToInsert
	}
	return ins, nil
}

// GetOneInstallation retrieves a single Installation by the provided filters.
// Returns zero-value Installation (ID == 0) when not found, no error.
func (r *implRepository) GetOneInstallation(ctx context.Context, opt repo.GetOneInstallationOptions) (model.Installation, error) {
	var conditions []string
	var args []any
	idx := 1

	if opt.ID != 0 {
		conditions = append(conditions, fmt.Sprintf("id = $%d", idx))
		args = append(args, opt.ID)
		idx++
	}
	if opt.Xref != 0 {
		conditions = append(conditions, fmt.Sprintf("xref = $%d", idx))
		args = append(args, opt.Xref)
	}
	if len(conditions) == 0 {
		conditions = append(conditions, "1=1")
	}

	query := fmt.Sprintf(
		`SELECT id, xref FROM installations WHERE %s LIMIT 1`,
		strings.Join(conditions, " AND "),
	)

	var ins model.Installation
	err := r.conn.QueryRowContext(ctx, query, args...).Scan(&ins.ID, &ins.Xref)
	if err == sql.ErrNoRows {
		return model.Installation{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneInstallation"), err)
		return model.Installation{}, repo.ErrFailedToGet
	}
	return ins, nil
}

// DeleteInstallationByXref removes all Installation rows with the given
// provider reference.
func (r *implRepository) DeleteInstallationByXref(ctx context.Context, xref int64) error {
	const query = `DELETE FROM installations WHERE xref = $1`
	if _, err := r.conn.ExecContext(ctx, query, xref); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteInstallationByXref"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}
