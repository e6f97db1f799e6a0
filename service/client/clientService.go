package client

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/DavidOvMu23/Viniloteca/model"
)

var ErrNotFound = errors.New("client not found")

type Repo interface {
	List(ctx context.Context) ([]model.User, error)
	ByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, fullName string, avatarURL *string) (*model.User, error)
}

type Service interface {
	// List: all client profiles, alphabetical.
	List(ctx context.Context) ([]model.User, error)

	// Detail: one profile by id.
	Detail(ctx context.Context, id uuid.UUID) (*model.User, error)

	// Update: supervisor edit of name and avatar.
	Update(ctx context.Context, id uuid.UUID, req model.UpdateClientReq) (*model.User, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context) ([]model.User, error) {
	return s.r.List(ctx)
}

func (s *service) Detail(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req model.UpdateClientReq) (*model.User, error) {
	u, err := s.r.Update(ctx, id, req.FullName, req.AvatarURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
