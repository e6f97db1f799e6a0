package catalog

import (
	"context"
	"sync"

	"github.com/DavidOvMu23/Viniloteca/model"
	discogsrepo "github.com/DavidOvMu23/Viniloteca/repository/discogs"
)

// defaultConcurrency bounds in-flight catalog fetches when the caller does
// not ask for a specific ceiling.
const defaultConcurrency = 4

// Enrich resolves display metadata for every distinct release ID in ids.
// Cache hits are answered immediately; misses are fetched with at most
// `concurrency` requests in flight. A failed fetch marks only its own ID as
// unavailable (nil) and never aborts the batch. Successful fetches land in
// the detail cache as they complete, so an overlapping Enrich call observes
// partial progress.
//
// The returned map holds exactly one entry per distinct input ID: resolved
// metadata or an explicit nil.
func (s *service) Enrich(ctx context.Context, ids []int64, concurrency int) map[int64]*model.CatalogMetadata {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	seen := make(map[int64]struct{}, len(ids))
	uniq := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}

	out := make(map[int64]*model.CatalogMetadata, len(uniq))
	var misses []int64
	for _, id := range uniq {
		if id <= 0 {
			out[id] = nil
			continue
		}
		if d, ok := s.details.Get(id); ok {
			out[id] = metadataFrom(id, d)
			continue
		}
		out[id] = nil // unavailable until a fetch succeeds
		misses = append(misses, id)
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, concurrency)
	)
loop:
	for _, id := range misses {
		// stop issuing new fetches once the caller is gone; in-flight ones
		// finish on their own
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break loop
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			defer func() { <-sem }()

			d, err := s.repo.GetRelease(ctx, id)
			if err != nil {
				s.log.Warn("catalog enrich fetch failed", "discogs_id", id, "err", err)
				return
			}
			s.details.Put(id, *d)

			mu.Lock()
			out[id] = metadataFrom(id, *d)
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	return out
}

func metadataFrom(id int64, d discogsrepo.ReleaseDetail) *model.CatalogMetadata {
	m := &model.CatalogMetadata{DiscogsID: id}
	if d.Title != "" {
		title := d.Title
		m.Title = &title
	}
	if img := d.PrimaryImage(); img != "" {
		u := img
		m.ImageURL = &u
	}
	return m
}
