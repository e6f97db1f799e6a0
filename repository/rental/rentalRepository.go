package rental

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/DavidOvMu23/Viniloteca/model"
)

type Repo interface {
	Insert(ctx context.Context, r *model.Rental) error
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Rental, error)
	SetReturned(ctx context.Context, tx *sql.Tx, id uuid.UUID, returnedAt time.Time) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Rental, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, rec *model.Rental) error {
	const q = `
		INSERT INTO rentals (id, discogs_id, user_id, operator_id, rented_at, due_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	return r.db.QueryRowContext(ctx, q,
		rec.ID, rec.DiscogsID, rec.UserID, rec.OperatorID, rec.RentedAt, rec.DueAt,
	).Scan(&rec.CreatedAt)
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Rental, error) {
	const q = `
		SELECT id, discogs_id, user_id, operator_id, rented_at, due_at, returned_at, created_at
		FROM rentals
		WHERE id = $1
		FOR UPDATE`
	rec := &model.Rental{}
	err := tx.QueryRowContext(ctx, q, id).Scan(
		&rec.ID, &rec.DiscogsID, &rec.UserID, &rec.OperatorID,
		&rec.RentedAt, &rec.DueAt, &rec.ReturnedAt, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *repo) SetReturned(ctx context.Context, tx *sql.Tx, id uuid.UUID, returnedAt time.Time) error {
	// Guard: returned_at is written exactly once.
	const q = `
		UPDATE rentals
		SET returned_at = $2
		WHERE id = $1
		AND returned_at IS NULL`
	_, err := tx.ExecContext(ctx, q, id, returnedAt)
	return err
}

func (r *repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Rental, error) {
	const q = `
		SELECT id, discogs_id, user_id, operator_id, rented_at, due_at, returned_at, created_at
		FROM rentals
		WHERE user_id = $1
		ORDER BY rented_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Rental
	for rows.Next() {
		var rec model.Rental
		if err := rows.Scan(
			&rec.ID, &rec.DiscogsID, &rec.UserID, &rec.OperatorID,
			&rec.RentedAt, &rec.DueAt, &rec.ReturnedAt, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
