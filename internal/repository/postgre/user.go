package postgre

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"mergebot/internal/model"
	repo "mergebot/internal/repository"
)

// UpsertUser inserts the user or refreshes login/avatar on xref conflict.
func (r *implRepository) UpsertUser(ctx context.Context, opt repo.UpsertUserOptions) (model.User, error) {
	const query = `
		INSERT INTO users (xref, login, avatar_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (xref) DO UPDATE SET login = EXCLUDED.login, avatar_url = EXCLUDED.avatar_url
		RETURNING id, xref, login, avatar_url`

	var u model.User
	err := r.conn.QueryRowContext(ctx, query, opt.Xref, opt.Login, opt.AvatarURL).Scan(
		&u.ID, &u.Xref, &u.Login, &u.AvatarURL,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpsertUser"), err)
		return model.User{}, repo.ErrFailedToInsert
	}
	return u, nil
}

// GetOneUser retrieves a single User by the provided filters.
// Returns zero-value User (ID == 0) when not found, no error.
func (r *implRepository) GetOneUser(ctx context.Context, opt repo.GetOneUserOptions) (model.User, error) {
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
		`SELECT id, xref, login, avatar_url FROM users WHERE %s LIMIT 1`,
		strings.Join(conditions, " AND "),
	)

	var u model.User
	err := r.conn.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Xref, &u.Login, &u.AvatarURL)
	if err == sql.ErrNoRows {
		return model.User{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneUser"), err)
		return model.User{}, repo.ErrFailedToGet
	}
	return u, nil
}
