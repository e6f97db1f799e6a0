package client

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/DavidOvMu23/Viniloteca/model"
)

type Repo interface {
	List(ctx context.Context) ([]model.User, error)
	ByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, fullName string, avatarURL *string) (*model.User, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) List(ctx context.Context) ([]model.User, error) {
	const q = `
		SELECT id, full_name, email, role, avatar_url, created_at
		FROM users
		ORDER BY full_name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.Role, &u.AvatarURL, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const q = `
		SELECT id, full_name, email, role, avatar_url, created_at
		FROM users
		WHERE id = $1`
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.FullName, &u.Email, &u.Role, &u.AvatarURL, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, fullName string, avatarURL *string) (*model.User, error) {
	const q = `
		UPDATE users
		SET full_name = $2,
			avatar_url = $3
		WHERE id = $1
		RETURNING id, full_name, email, role, avatar_url, created_at`
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, q, id, fullName, avatarURL).Scan(
		&u.ID, &u.FullName, &u.Email, &u.Role, &u.AvatarURL, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}
