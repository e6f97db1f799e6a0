package ttlcache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestPutGetRoundTrip(t *testing.T) {
	clk := newFakeClock()
	c := New[int64, string](time.Minute, 10, WithClock[int64, string](clk.now))

	c.Put(42, "thriller")
	got, ok := c.Get(42)
	require.True(t, ok)
	require.Equal(t, "thriller", got)
}

func TestGetExpired(t *testing.T) {
	clk := newFakeClock()
	c := New[int64, string](time.Minute, 10, WithClock[int64, string](clk.now))

	c.Put(42, "thriller")

	clk.advance(59 * time.Second)
	_, ok := c.Get(42)
	require.True(t, ok, "entry should still be valid just before the TTL")

	clk.advance(time.Second)
	_, ok = c.Get(42)
	require.False(t, ok, "entry should be absent once the TTL has elapsed")
}

func TestPutRefreshesEntry(t *testing.T) {
	clk := newFakeClock()
	c := New[int64, string](time.Minute, 10, WithClock[int64, string](clk.now))

	c.Put(42, "old")
	clk.advance(50 * time.Second)
	c.Put(42, "new")

	clk.advance(30 * time.Second)
	got, ok := c.Get(42)
	require.True(t, ok, "refreshed entry should survive past the original expiry")
	require.Equal(t, "new", got)
}

func TestGetOrFetchStoresSuccess(t *testing.T) {
	clk := newFakeClock()
	c := New[string, int](time.Minute, 10, WithClock[string, int](clk.now))

	calls := 0
	fetch := func() (int, error) { calls++; return 7, nil }

	v, err := c.GetOrFetch("k", fetch)
	require.NoError(t, err)
	require.Equal(t, 7, v)

	v, err = c.GetOrFetch("k", fetch)
	require.NoError(t, err)
	require.Equal(t, 7, v)
	require.Equal(t, 1, calls, "second call must be served from cache")
}

func TestGetOrFetchDoesNotCacheFailure(t *testing.T) {
	clk := newFakeClock()
	c := New[string, int](time.Minute, 10, WithClock[string, int](clk.now))

	boom := errors.New("boom")
	calls := 0
	_, err := c.GetOrFetch("k", func() (int, error) { calls++; return 0, boom })
	require.ErrorIs(t, err, boom)

	v, err := c.GetOrFetch("k", func() (int, error) { calls++; return 9, nil })
	require.NoError(t, err)
	require.Equal(t, 9, v)
	require.Equal(t, 2, calls, "failed fetch must not poison the key")
}

func TestCapacityEviction(t *testing.T) {
	clk := newFakeClock()
	c := New[int64, string](time.Hour, 2, WithClock[int64, string](clk.now))

	c.Put(1, "a")
	c.Put(2, "b")
	c.Put(3, "c")

	_, ok := c.Get(1)
	require.False(t, ok, "oldest entry should be evicted at capacity")
	_, ok = c.Get(3)
	require.True(t, ok)
	require.Equal(t, 2, c.Len())
}

func TestPurgeExpired(t *testing.T) {
	clk := newFakeClock()
	c := New[int64, string](time.Minute, 10, WithClock[int64, string](clk.now))

	c.Put(1, "a")
	clk.advance(30 * time.Second)
	c.Put(2, "b")
	clk.advance(40 * time.Second)

	require.Equal(t, 1, c.PurgeExpired())
	require.Equal(t, 1, c.Len())
	_, ok := c.Get(2)
	require.True(t, ok)
}
