package catalog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/DavidOvMu23/Viniloteca/model"
	discogsrepo "github.com/DavidOvMu23/Viniloteca/repository/discogs"
	"github.com/DavidOvMu23/Viniloteca/util/ttlcache"
)

// Cache tuning. Search rankings churn, so search results live briefly;
// individual release metadata barely changes and can sit for a day. Both
// caches are in-memory only: a restart simply refetches.
const (
	searchTTL = 5 * time.Minute
	searchCap = 256
	detailTTL = 24 * time.Hour
	detailCap = 2048
)

type searchKey struct {
	query string
	page  int
}

type Service interface {
	// Search: cached Discogs database search.
	Search(ctx context.Context, query string, page int) ([]discogsrepo.ReleaseSummary, error)

	// Release: cached release detail lookup.
	Release(ctx context.Context, id int64) (*discogsrepo.ReleaseDetail, error)

	// Enrich: resolve metadata for a set of release IDs, see enricher.go.
	Enrich(ctx context.Context, ids []int64, concurrency int) map[int64]*model.CatalogMetadata

	// PurgeExpired drops expired cache entries, returning how many went.
	PurgeExpired() int
}

type service struct {
	repo    discogsrepo.Repo
	search  *ttlcache.Cache[searchKey, []discogsrepo.ReleaseSummary]
	details *ttlcache.Cache[int64, discogsrepo.ReleaseDetail]
	log     *slog.Logger
}

func New(repo discogsrepo.Repo, log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	return &service{
		repo:    repo,
		search:  ttlcache.New[searchKey, []discogsrepo.ReleaseSummary](searchTTL, searchCap),
		details: ttlcache.New[int64, discogsrepo.ReleaseDetail](detailTTL, detailCap),
		log:     log,
	}
}

func (s *service) Search(ctx context.Context, query string, page int) ([]discogsrepo.ReleaseSummary, error) {
	if page < 1 {
		page = 1
	}
	key := searchKey{query: normalizeQuery(query), page: page}
	return s.search.GetOrFetch(key, func() ([]discogsrepo.ReleaseSummary, error) {
		return s.repo.Search(ctx, key.query, key.page)
	})
}

func (s *service) Release(ctx context.Context, id int64) (*discogsrepo.ReleaseDetail, error) {
	d, err := s.details.GetOrFetch(id, func() (discogsrepo.ReleaseDetail, error) {
		det, err := s.repo.GetRelease(ctx, id)
		if err != nil {
			return discogsrepo.ReleaseDetail{}, err
		}
		return *det, nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *service) PurgeExpired() int {
	return s.search.PurgeExpired() + s.details.PurgeExpired()
}

// normalizeQuery folds case and collapses whitespace so trivially different
// spellings share a cache entry.
func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}
