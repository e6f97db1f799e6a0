package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	discogsrepo "github.com/DavidOvMu23/Viniloteca/repository/discogs"
)

func TestSearchCachesNormalizedQuery(t *testing.T) {
	searches := 0
	m := &discogsMock{searchFn: func(ctx context.Context, query string, page int) ([]discogsrepo.ReleaseSummary, error) {
		searches++
		require.Equal(t, "michael jackson", query)
		return []discogsrepo.ReleaseSummary{{ID: 42, Title: "Thriller"}}, nil
	}}
	s := New(m, quietLogger())

	rows, err := s.Search(context.Background(), "Michael Jackson", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Different spelling, same normalized key: served from cache.
	rows, err = s.Search(context.Background(), "  michael   JACKSON ", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 1, searches)
}

func TestSearchErrorNotCached(t *testing.T) {
	searches := 0
	m := &discogsMock{searchFn: func(ctx context.Context, query string, page int) ([]discogsrepo.ReleaseSummary, error) {
		searches++
		if searches == 1 {
			return nil, discogsrepo.ErrRateLimited
		}
		return []discogsrepo.ReleaseSummary{{ID: 7, Title: "Abbey Road"}}, nil
	}}
	s := New(m, quietLogger())

	_, err := s.Search(context.Background(), "beatles", 1)
	require.ErrorIs(t, err, discogsrepo.ErrRateLimited)

	rows, err := s.Search(context.Background(), "beatles", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 2, searches, "a failed search must be retried, not cached")
}

func TestReleaseCached(t *testing.T) {
	m := &discogsMock{getFn: func(ctx context.Context, id int64) (*discogsrepo.ReleaseDetail, error) {
		return release(id), nil
	}}
	s := New(m, quietLogger())

	d, err := s.Release(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, "Release 42", d.Title)

	_, err = s.Release(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, int64(1), m.calls.Load())
}

func TestReleaseSharesCacheWithEnrich(t *testing.T) {
	m := &discogsMock{getFn: func(ctx context.Context, id int64) (*discogsrepo.ReleaseDetail, error) {
		return release(id), nil
	}}
	s := New(m, quietLogger())

	_, err := s.Release(context.Background(), 42)
	require.NoError(t, err)

	got := s.Enrich(context.Background(), []int64{42}, 4)
	require.Equal(t, int64(1), m.calls.Load(), "enrich should reuse the detail fetched by Release")
	require.NotNil(t, got[42])
}

func TestReleaseNotFoundPassesThrough(t *testing.T) {
	m := &discogsMock{getFn: func(ctx context.Context, id int64) (*discogsrepo.ReleaseDetail, error) {
		return nil, discogsrepo.ErrNotFound
	}}
	s := New(m, quietLogger())

	_, err := s.Release(context.Background(), 99)
	require.ErrorIs(t, err, discogsrepo.ErrNotFound)
}
