// Package search scores a category's whole catalogue against a query and
// renders the best matches in place of the paginated view.
package search

import (
	"context"
	"strings"
	"sync"

	"themerr/gallery/internal/domain"
	"themerr/gallery/internal/ranking"
	"themerr/gallery/internal/render"
	"themerr/gallery/internal/scoring"
	"themerr/gallery/internal/source"
	"themerr/gallery/internal/state"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultThreshold is the lowest score a title needs to be shown.
const DefaultThreshold = 40

type Options struct {
	Threshold  int
	MaxWorkers int
	Progress   source.ProgressFunc
}

type Engine struct {
	src      *source.Source
	st       *state.CategoryState
	section  *render.Section
	renderer render.Renderer

	threshold  int
	maxWorkers int
	progress   source.ProgressFunc

	mu sync.Mutex
}

func New(src *source.Source, st *state.CategoryState, section *render.Section, renderer render.Renderer, opts Options) *Engine {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = 10
	}

	return &Engine{
		src:        src,
		st:         st,
		section:    section,
		renderer:   renderer,
		threshold:  opts.Threshold,
		maxWorkers: opts.MaxWorkers,
		progress:   opts.Progress,
	}
}

// Match scores every summary against query and returns those at or above
// threshold, best first, ties broken by title.
func Match(items []domain.ItemSummary, query string, threshold int) []domain.ScoredItem {
	var scored []domain.ScoredItem
	for _, it := range items {
		if s := scoring.Score(it.Title, query); s >= threshold {
			scored = append(scored, domain.ScoredItem{Item: it, Score: s})
		}
	}

	ranking.Sort(scored,
		func(s domain.ScoredItem) int { return s.Score },
		func(s domain.ScoredItem) string { return s.Item.Title },
	)
	return scored
}

// Search replaces the category's display with the records matching query.
// A blank query leaves the display untouched and returns nil.
func (e *Engine) Search(ctx context.Context, query string) ([]domain.CatalogueItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	category := e.st.Category()

	all, err := e.src.AllItems(ctx, e.st, e.progress)
	if err != nil {
		log.Errorf("❌ Search for %q in %s failed: %v", query, category, err)
		return nil, err
	}

	matches := Match(all, query, e.threshold)
	log.Infof("🔍 %q matched %d of %d %s", query, len(matches), len(all), category)

	results := e.section.Results()
	results.Clear()
	group := results.Child()
	slots := make([]*render.Container, len(matches))
	for i := range matches {
		slots[i] = group.Child()
	}

	found := make([]*domain.CatalogueItem, len(matches))
	g := new(errgroup.Group)
	g.SetLimit(e.maxWorkers)
	for i, m := range matches {
		i, m := i, m
		g.Go(func() error {
			item, err := e.src.ItemDetail(ctx, category, m.Item.ID)
			if err != nil {
				log.Errorf("❌ Failed to get details for %s %d (%s): %v", category, m.Item.ID, m.Item.Title, err)
				return nil
			}
			if err := e.renderer.Render(item, slots[i]); err != nil {
				log.Errorf("❌ Failed to render %s %d: %v", category, m.Item.ID, err)
				return nil
			}
			found[i] = item
			return nil
		})
	}
	_ = g.Wait()

	e.section.ShowResults()

	out := make([]domain.CatalogueItem, 0, len(found))
	for _, item := range found {
		if item != nil {
			out = append(out, *item)
		}
	}
	return out, nil
}

// Reset goes back to the paginated view.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.section.ShowItems()
}
