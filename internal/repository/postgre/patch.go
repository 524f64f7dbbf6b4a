package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"mergebot/internal/model"
	repo "mergebot/internal/repository"
)

// CreatePatch inserts a new Patch row.
func (r *implRepository) CreatePatch(ctx context.Context, opt repo.CreatePatchOptions) (model.Patch, error) {
	const query = `
		INSERT INTO patches (project_id, number, title, body, target_branch, commit_sha, open, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, project_id, number, title, body, target_branch, commit_sha, open, author_id`

	var p model.Patch
	err := r.conn.QueryRowContext(ctx, query,
		opt.ProjectID, opt.Number, opt.Title, opt.Body, opt.TargetBranch, opt.Commit, opt.Open, opt.AuthorID,
	).Scan(
		&p.ID, &p.ProjectID, &p.Number, &p.Title, &p.Body, &p.TargetBranch, &p.Commit, &p.Open, &p.AuthorID,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreatePatch"), err)
		return model.Patch{}, repo.ErrFailedToInsert
	}
	return p, nil
}

// GetOnePatch retrieves a single Patch by the provided filters.
// Returns zero-value Patch (ID == 0) when not found, no error.
func (r *implRepository) GetOnePatch(ctx context.Context, opt repo.GetOnePatchOptions) (model.Patch, error) {
	var conditions []string
	var args []any
	idx := 1

	if opt.ID != 0 {
		conditions = append(conditions, fmt.Sprintf("id = $%d", idx))
		args = append(args, opt.ID)
		idx++
	}
	if opt.ProjectID != 0 {
		conditions = append(conditions, fmt.Sprintf("project_id = $%d", idx))
		args = append(args, opt.ProjectID)
		idx++

		if opt.Number != 0 {
			conditions = append(conditions, fmt.Sprintf("number = $%d", idx))
			args = append(args, opt.Number)
		}
	}
	if len(conditions) == 0 {
		conditions = append(conditions, "1=1")
	}

	query := fmt.Sprintf(
		`SELECT id, project_id, number, title, body, target_branch, commit_sha, open, author_id
		 FROM patches WHERE %s LIMIT 1`,
		strings.Join(conditions, " AND "),
	)

	var p model.Patch
	err := r.conn.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.ProjectID, &p.Number, &p.Title, &p.Body, &p.TargetBranch, &p.Commit, &p.Open, &p.AuthorID,
	)
	if err == sql.ErrNoRows {
		return model.Patch{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOnePatch"), err)
		return model.Patch{}, repo.ErrFailedToGet
	}
	return p, nil
}

// UpdatePatch applies the non-nil fields of opt to the Patch row.
func (r *implRepository) UpdatePatch(ctx context.Context, opt repo.UpdatePatchOptions) (model.Patch, error) {
	sets, args := buildPatchUpdate(opt)
	if len(sets) == 0 {
		return r.GetOnePatch(ctx, repo.GetOnePatchOptions{ID: opt.ID})
	}

	query := fmt.Sprintf(
		`UPDATE patches SET %s WHERE id = $%d
		 RETURNING id, project_id, number, title, body, target_branch, commit_sha, open, author_id`,
		strings.Join(sets, ", "), len(args)+1,
	)
	args = append(args, opt.ID)

	var p model.Patch
	err := r.conn.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.ProjectID, &p.Number, &p.Title, &p.Body, &p.TargetBranch, &p.Commit, &p.Open, &p.AuthorID,
	)
	if err == sql.ErrNoRows {
		return model.Patch{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdatePatch"), err)
		return model.Patch{}, repo.ErrFailedToUpdate
	}
	return p, nil
}

// buildPatchUpdate builds the SET clause + args for UpdatePatch.
func buildPatchUpdate(opt repo.UpdatePatchOptions) ([]string, []any) {
	var sets []string
	var args []any
	idx := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if opt.Title != nil {
		add("title", *opt.Title)
	}
	if opt.Body != nil {
		add("body", *opt.Body)
	}
	if opt.TargetBranch != nil {
		add("target_branch", *opt.TargetBranch)
	}
	if opt.Commit != nil {
		add("commit_sha", *opt.Commit)
	}
	if opt.Open != nil {
		add("open", *opt.Open)
	}
	return sets, args
}
