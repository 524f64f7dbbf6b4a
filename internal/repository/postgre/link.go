package postgre

import (
	"context"
	"database/sql"

	"mergebot/internal/model"
	repo "mergebot/internal/repository"
)

// CreateLinkUserProject inserts a user/project link row.
func (r *implRepository) CreateLinkUserProject(ctx context.Context, opt repo.CreateLinkUserProjectOptions) error {
	const query = `INSERT INTO link_user_project (user_id, project_id) VALUES ($1, $2)`
	if _, err := r.conn.ExecContext(ctx, query, opt.UserID, opt.ProjectID); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateLinkUserProject"), err)
		return repo.ErrFailedToInsert
	}
	return nil
}

// GetOneLinkUserProject retrieves a link for the (user, project) pair.
// Returns zero-value link (UserID == 0) when not found, no error.
func (r *implRepository) GetOneLinkUserProject(ctx context.Context, opt repo.GetOneLinkUserProjectOptions) (model.LinkUserProject, error) {
	const query = `SELECT user_id, project_id FROM link_user_project WHERE user_id = $1 AND project_id = $2 LIMIT 1`

	var link model.LinkUserProject
	err := r.conn.QueryRowContext(ctx, query, opt.UserID, opt.ProjectID).Scan(&link.UserID, &link.ProjectID)
	if err == sql.ErrNoRows {
		return model.LinkUserProject{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneLinkUserProject"), err)
		return model.LinkUserProject{}, repo.ErrFailedToGet
	}
	return link, nil
}
