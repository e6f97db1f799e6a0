package discogsrepo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestRepo(t *testing.T, handler http.HandlerFunc) Repo {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPWith(srv.URL, "test-token", srv.Client(), rate.NewLimiter(rate.Inf, 1), 2*time.Second)
}

func TestGetReleaseHeaders(t *testing.T) {
	var gotAuth, gotUA, gotPath string
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42,"title":"Thriller","year":1982,"images":[{"type":"primary","uri":"https://img.example/42.jpg"}]}`))
	})

	d, err := repo.GetRelease(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, "/releases/42", gotPath)
	require.Equal(t, "Discogs token=test-token", gotAuth)
	require.Equal(t, "viniloteca/1.0", gotUA)
	require.Equal(t, "Thriller", d.Title)
	require.Equal(t, "https://img.example/42.jpg", d.PrimaryImage())
}

func TestGetReleaseCoverImageFallback(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":7,"title":"Abbey Road","cover_image":"https://img.example/7.jpg"}`))
	})

	d, err := repo.GetRelease(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "https://img.example/7.jpg", d.PrimaryImage())
}

func TestGetReleaseNotFound(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := repo.GetRelease(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetReleaseRateLimited(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := repo.GetRelease(context.Background(), 99)
	require.ErrorIs(t, err, ErrRateLimited)
}

func TestGetReleaseServerError(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := repo.GetRelease(context.Background(), 99)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestGetReleaseTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)
	repo := NewHTTPWith(srv.URL, "", srv.Client(), rate.NewLimiter(rate.Inf, 1), 50*time.Millisecond)

	_, err := repo.GetRelease(context.Background(), 1)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestGetReleaseInvalidID(t *testing.T) {
	requests := 0
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	_, err := repo.GetRelease(context.Background(), 0)
	require.ErrorIs(t, err, ErrNotFound)
	require.Zero(t, requests, "no request should be issued for a non-positive id")
}

func TestSearchQuery(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"results":[{"id":42,"title":"Thriller","year":"1982","thumb":"t.jpg"}]}`))
	})

	rows, err := repo.Search(context.Background(), "michael jackson", 1)
	require.NoError(t, err)
	require.Equal(t, "/database/search", gotPath)
	require.Equal(t, []string{"michael jackson"}, gotQuery["q"])
	require.Equal(t, []string{"release"}, gotQuery["type"])
	require.Len(t, rows, 1)
	require.Equal(t, int64(42), rows[0].ID)
	require.Equal(t, "Thriller", rows[0].Title)
}
