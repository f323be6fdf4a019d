// Package source is the catalogue page source: page counts, pages and item
// details from ThemerrDB, cached so each is fetched at most once.
package source

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"themerr/gallery/internal/client"
	"themerr/gallery/internal/domain"
	"themerr/gallery/internal/state"

	lru "github.com/hashicorp/golang-lru/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var ErrPageOutOfRange = errors.New("page number out of range")

// ProgressFunc is told how many of total pages are cached while AllItems runs.
type ProgressFunc func(done, total int)

type Source struct {
	client     client.ThemerrClient
	details    *lru.Cache[domain.ItemKey, *domain.CatalogueItem]
	maxWorkers int
	flight     singleflight.Group
}

func New(c client.ThemerrClient, detailCacheSize, maxWorkers int) (*Source, error) {
	details, err := lru.New[domain.ItemKey, *domain.CatalogueItem](max(detailCacheSize, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to create detail cache: %w", err)
	}

	return &Source{
		client:     c,
		details:    details,
		maxWorkers: max(maxWorkers, 1),
	}, nil
}

// do runs fn once per key across concurrent callers. The shared fetch is
// detached from the first caller's cancellation; each caller stops waiting
// when its own ctx is done.
func (s *Source) do(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	ch := s.flight.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

// TotalPages fetches pages.json once per category and memoizes the count in st.
func (s *Source) TotalPages(ctx context.Context, st *state.CategoryState) (int, error) {
	if n, ok := st.TotalPages(); ok {
		return n, nil
	}

	category := st.Category()
	v, err := s.do(ctx, "pages:"+category.String(), func(ctx context.Context) (any, error) {
		info, err := s.client.GetPagesInfo(ctx, category)
		if err != nil {
			return 0, err
		}
		return *info.Pages, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get page count for %s: %w", category, err)
	}

	st.SetTotalPages(v.(int))
	n, _ := st.TotalPages()
	return n, nil
}

// Page returns page n of the category, fetching it only if it is not cached.
func (s *Source) Page(ctx context.Context, st *state.CategoryState, n int) ([]domain.ItemSummary, error) {
	total, err := s.TotalPages(ctx, st)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > total {
		return nil, fmt.Errorf("%w: page %d of %d for %s", ErrPageOutOfRange, n, total, st.Category())
	}

	if items, ok := st.Page(n); ok {
		return items, nil
	}

	category := st.Category()
	v, err := s.do(ctx, fmt.Sprintf("page:%s:%d", category, n), func(ctx context.Context) (any, error) {
		if items, ok := st.Page(n); ok {
			return items, nil
		}
		items, err := s.client.GetPage(ctx, category, n)
		if err != nil {
			return nil, err
		}
		return st.StorePage(n, items), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get page %d of %s: %w", n, category, err)
	}

	return v.([]domain.ItemSummary), nil
}

// ItemDetail returns the full record for one item.
func (s *Source) ItemDetail(ctx context.Context, category domain.Category, id int64) (*domain.CatalogueItem, error) {
	key := domain.ItemKey{Category: category, ID: id}
	if item, ok := s.details.Get(key); ok {
		return item, nil
	}

	v, err := s.do(ctx, fmt.Sprintf("item:%s:%d", category, id), func(ctx context.Context) (any, error) {
		item, err := s.client.GetItemDetail(ctx, category, id)
		if err != nil {
			return nil, err
		}
		s.details.Add(key, item)
		return item, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d of %s: %w", id, category, err)
	}

	return v.(*domain.CatalogueItem), nil
}

// AllItems materializes every page of the category and returns the items in
// page order. Cached pages are not fetched again.
func (s *Source) AllItems(ctx context.Context, st *state.CategoryState, progress ProgressFunc) ([]domain.ItemSummary, error) {
	total, err := s.TotalPages(ctx, st)
	if err != nil {
		return nil, err
	}

	missing := st.MissingPages()
	var done atomic.Int64
	done.Store(int64(total - len(missing)))
	if progress != nil {
		progress(int(done.Load()), total)
	}

	if len(missing) > 0 {
		log.Infof("🔄 Materializing %d of %d pages for %s", len(missing), total, st.Category())

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.maxWorkers)
		for _, n := range missing {
			n := n
			g.Go(func() error {
				if _, err := s.Page(gctx, st, n); err != nil {
					return err
				}
				d := done.Add(1)
				if progress != nil {
					progress(int(d), total)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	var all []domain.ItemSummary
	for n := 1; n <= total; n++ {
		items, ok := st.Page(n)
		if !ok {
			return nil, fmt.Errorf("page %d of %s missing after materialization", n, st.Category())
		}
		all = append(all, items...)
	}

	return all, nil
}
