package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"mergebot/internal/model"
	repo "mergebot/internal/repository"
)

// CreateProject inserts a new Project row.
func (r *implRepository) CreateProject(ctx context.Context, opt repo.CreateProjectOptions) (model.Project, error) {
	const query = `
		INSERT INTO projects (repo_xref, name, installation_id)
		VALUES ($1, $2, $3)
		RETURNING id, repo_xref, name, installation_id`

	var p model.Project
	err := r.conn.QueryRowContext(ctx, query, opt.RepoXref, opt.Name, opt.InstallationID).Scan(
		&p.ID, &p.RepoXref, &p.Name, &p.InstallationID,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateProject"), err)
		return model.Project{}, repo.ErrFailedToInsert
	}
	return p, nil
}

// GetOneProject retrieves a single Project by the provided filters.
// Returns zero-value Project (ID == 0) when not found, no error.
func (r *implRepository) GetOneProject(ctx context.Context, opt repo.GetOneProjectOptions) (model.Project, error) {
	var conditions []string
	var args []any
	idx := 1

	if opt.ID != 0 {
		conditions = append(conditions, fmt.Sprintf("id = $%d", idx))
		args = append(args, opt.ID)
		idx++
	}
	if opt.RepoXref != 0 {
		conditions = append(conditions, fmt.Sprintf("repo_xref = $%d", idx))
		args = append(args, opt.RepoXref)
	}
	if len(conditions) == 0 {
		conditions = append(conditions, "1=1")
	}

	query := fmt.Sprintf(
		`SELECT id, repo_xref, name, installation_id FROM projects WHERE %s LIMIT 1`,
		strings.Join(conditions, " AND "),
	)

	var p model.Project
	err := r.conn.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.RepoXref, &p.Name, &p.InstallationID,
	)
	if err == sql.ErrNoRows {
		return model.Project{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneProject"), err)
		return model.Project{}, repo.ErrFailedToGet
	}
	return p, nil
}

// DeleteProjectByRepoXref removes the Project rows matching the provider
// repository reference.
func (r *implRepository) DeleteProjectByRepoXref(ctx context.Context, repoXref int64) error {
	const query = `DELETE FROM projects WHERE repo_xref = $1`
	if _, err := r.conn.ExecContext(ctx, query, repoXref); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteProjectByRepoXref"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}
