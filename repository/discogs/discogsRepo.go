package discogsrepo

import (
	"context"
	"errors"
)

// Classified outcomes of a catalog call. The Discogs API is a fixed external
// contract; callers decide what to do about each class (the enricher treats
// rate limits and transient failures the same).
var (
	ErrNotFound    = errors.New("discogs: release not found")
	ErrRateLimited = errors.New("discogs: rate limited")
	ErrUnavailable = errors.New("discogs: service unavailable")
)

// ReleaseSummary is one row of a Discogs database search.
type ReleaseSummary struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Year       string `json:"year,omitempty"`
	Thumb      string `json:"thumb,omitempty"`
	CoverImage string `json:"cover_image,omitempty"`
}

// ReleaseImage is one image attached to a release detail.
type ReleaseImage struct {
	Type string `json:"type"`
	URI  string `json:"uri"`
}

// ReleaseDetail is the full record for a single release.
type ReleaseDetail struct {
	ID         int64          `json:"id"`
	Title      string         `json:"title"`
	Year       int            `json:"year,omitempty"`
	Images     []ReleaseImage `json:"images,omitempty"`
	CoverImage string         `json:"cover_image,omitempty"`
}

// PrimaryImage returns the first image URI, falling back to cover_image.
func (d *ReleaseDetail) PrimaryImage() string {
	if len(d.Images) > 0 && d.Images[0].URI != "" {
		return d.Images[0].URI
	}
	return d.CoverImage
}

type Repo interface {
	Search(ctx context.Context, query string, page int) ([]ReleaseSummary, error)
	GetRelease(ctx context.Context, id int64) (*ReleaseDetail, error)
}
