package rental

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/DavidOvMu23/Viniloteca/model"
)

// dto

type CreateInput struct {
	UserID     uuid.UUID
	OperatorID *uuid.UUID
	DiscogsID  int64
	RentedAt   time.Time
	DueAt      time.Time
}

// HistoryRow is one rental in a user's history, decorated with its derived
// status and whatever catalog metadata the enricher could resolve. Nil title
// and image mean the catalog was unavailable for that release.
type HistoryRow struct {
	RentalID     uuid.UUID          `json:"rental_id"`
	DiscogsID    int64              `json:"discogs_id"`
	RentedAt     time.Time          `json:"rented_at"`
	DueAt        time.Time          `json:"due_at"`
	ReturnedAt   *time.Time         `json:"returned_at,omitempty"`
	Status       model.RentalStatus `json:"status"`
	ReturnedLate bool               `json:"returned_late"`
	Title        *string            `json:"title"`
	ImageURL     *string            `json:"image_url"`
}

type Repo interface {
	Insert(ctx context.Context, r *model.Rental) error
	GetForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Rental, error)
	SetReturned(ctx context.Context, tx *sql.Tx, id uuid.UUID, returnedAt time.Time) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Rental, error)
}

// Enricher resolves catalog metadata for a set of release IDs.
type Enricher interface {
	Enrich(ctx context.Context, ids []int64, concurrency int) map[int64]*model.CatalogMetadata
}

type Service interface {
	// Create: validate the period and persist a new rental.
	Create(ctx context.Context, in CreateInput) (*model.Rental, error)

	// Return: stamp returned_at exactly once. Already-returned records come
	// back with ErrAlreadyReturned and the stored record unchanged.
	Return(ctx context.Context, callerID uuid.UUID, supervisor bool, rentalID uuid.UUID) (*model.Rental, error)

	// History: list a user's rentals newest-first with derived status and
	// catalog metadata.
	History(ctx context.Context, userID uuid.UUID) ([]HistoryRow, error)
}

// ----- Service implementation -----

type service struct {
	db          *sql.DB
	r           Repo
	e           Enricher
	concurrency int
	now         func() time.Time
}

func New(db *sql.DB, r Repo, e Enricher, concurrency int) Service {
	return &service{db: db, r: r, e: e, concurrency: concurrency, now: time.Now}
}

func (s *service) Create(ctx context.Context, in CreateInput) (*model.Rental, error) {
	if err := ValidatePeriod(in.RentedAt, in.DueAt, MaxRentalDays); err != nil {
		return nil, err
	}

	rec := &model.Rental{
		ID:         uuid.New(),
		DiscogsID:  in.DiscogsID,
		UserID:     in.UserID,
		OperatorID: in.OperatorID,
		RentedAt:   in.RentedAt.UTC(),
		DueAt:      in.DueAt.UTC(),
	}
	if err := s.r.Insert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) Return(ctx context.Context, callerID uuid.UUID, supervisor bool, rentalID uuid.UUID) (rec *model.Rental, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	cur, err := s.r.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	if cur.UserID != callerID && !supervisor {
		return nil, makeErr(ErrNotOwner)
	}

	updated, err := MarkReturned(*cur, s.now().UTC())
	if err != nil {
		// duplicate return: surface the stored record so the caller can
		// treat it as success
		return cur, err
	}

	if err = s.r.SetReturned(ctx, tx, rentalID, *updated.ReturnedAt); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *service) History(ctx context.Context, userID uuid.UUID) ([]HistoryRow, error) {
	recs, err := s.r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.DiscogsID)
	}
	var meta map[int64]*model.CatalogMetadata
	if s.e != nil {
		meta = s.e.Enrich(ctx, ids, s.concurrency)
	}

	now := s.now()
	rows := make([]HistoryRow, 0, len(recs))
	for _, r := range recs {
		row := HistoryRow{
			RentalID:     r.ID,
			DiscogsID:    r.DiscogsID,
			RentedAt:     r.RentedAt,
			DueAt:        r.DueAt,
			ReturnedAt:   r.ReturnedAt,
			Status:       DeriveStatus(r, now),
			ReturnedLate: ReturnedLate(r),
		}
		if m := meta[r.DiscogsID]; m != nil {
			row.Title = m.Title
			row.ImageURL = m.ImageURL
		}
		rows = append(rows, row)
	}
	return rows, nil
}
