package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"themerr/gallery/internal/domain"
	"themerr/gallery/internal/pagination"
	"themerr/gallery/internal/render"
	"themerr/gallery/internal/search"
	"themerr/gallery/internal/source"
	"themerr/gallery/internal/state"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Debounce   time.Duration
	Clock      clockwork.Clock
	MaxWorkers int
	Threshold  int
	// Progress, when set, supplies the materialization reporter of a category.
	Progress func(domain.Category) source.ProgressFunc
}

type categoryGallery struct {
	state      *state.CategoryState
	controller *pagination.Controller
	engine     *search.Engine
}

// Service wires one pagination controller and one search engine per
// category onto a shared board.
type Service struct {
	board       *render.Board
	preferences state.PreferenceStore
	clock       clockwork.Clock
	debounce    time.Duration
	categories  []domain.Category
	galleries   map[domain.Category]*categoryGallery
}

func NewService(
	src *source.Source,
	board *render.Board,
	renderer render.Renderer,
	preferences state.PreferenceStore,
	categories []domain.Category,
	opts Options,
) *Service {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = pagination.DefaultDebounce
	}

	s := &Service{
		board:       board,
		preferences: preferences,
		clock:       opts.Clock,
		debounce:    opts.Debounce,
		categories:  categories,
		galleries:   make(map[domain.Category]*categoryGallery, len(categories)),
	}

	for _, category := range categories {
		st := state.NewCategoryState(category)
		section := board.Section(category)

		var progress source.ProgressFunc
		if opts.Progress != nil {
			progress = opts.Progress(category)
		}

		s.galleries[category] = &categoryGallery{
			state: st,
			controller: pagination.NewController(src, st, section.Items(), renderer, pagination.Options{
				Debounce:   opts.Debounce,
				Clock:      opts.Clock,
				MaxWorkers: opts.MaxWorkers,
			}),
			engine: search.New(src, st, section, renderer, search.Options{
				Threshold:  opts.Threshold,
				MaxWorkers: opts.MaxWorkers,
				Progress:   progress,
			}),
		}
	}

	return s
}

func (s *Service) Board() *render.Board {
	return s.board
}

func (s *Service) Categories() []domain.Category {
	return append([]domain.Category(nil), s.categories...)
}

func (s *Service) gallery(category domain.Category) (*categoryGallery, error) {
	g, ok := s.galleries[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not configured", domain.ErrUnknownCategory, category)
	}
	return g, nil
}

// LoadInitial loads the first page of every category concurrently. A failing
// category does not stop the others; its failure is logged and included in
// the joined error, and the rest of the board stays usable.
func (s *Service) LoadInitial(ctx context.Context) error {
	errGroup := new(errgroup.Group)
	errs := make([]error, len(s.categories))

	for i, category := range s.categories {
		i, category := i, category
		errGroup.Go(func() error {
			log.Infof("🔄 Loading %s", category.GetCategoryName())

			res, err := s.galleries[category].controller.Load(ctx)
			if err != nil {
				log.Warnf("⚠️ %s stopped loading: %v", category.GetCategoryName(), err)
				errs[i] = fmt.Errorf("failed to load %s: %w", category, err)
				return nil
			}

			log.Infof("✅ Loaded %s: page %d, %d items", category.GetCategoryName(), res.Page, res.Rendered)
			return nil
		})
	}

	_ = errGroup.Wait()
	return errors.Join(errs...)
}

// LoadMore is one "load more" trigger on the category.
func (s *Service) LoadMore(ctx context.Context, category domain.Category) (pagination.Result, error) {
	g, err := s.gallery(category)
	if err != nil {
		return pagination.Result{}, err
	}
	return g.controller.Load(ctx)
}

// LoadPages keeps triggering the category until pages more pages are loaded,
// waiting out the debounce window between triggers. It stops early when the
// category is exhausted or a page is only partly rendered.
func (s *Service) LoadPages(ctx context.Context, category domain.Category, pages int) ([]pagination.Result, error) {
	g, err := s.gallery(category)
	if err != nil {
		return nil, err
	}

	var results []pagination.Result
	for loaded := 0; loaded < pages; {
		res, err := g.controller.Load(ctx)
		if err != nil {
			return results, err
		}

		switch res.Outcome {
		case pagination.OutcomeRejected:
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			case <-s.clock.After(s.debounce):
			}
			continue
		case pagination.OutcomeExhausted:
			return results, nil
		case pagination.OutcomePartial:
			log.Warnf("⚠️ Stopping on page %d of %s with %d items missing", res.Page, category, res.Failed)
			return append(results, res), nil
		}

		results = append(results, res)
		loaded++
	}

	return results, nil
}

func (s *Service) Exhausted(category domain.Category) bool {
	g, err := s.gallery(category)
	if err != nil {
		return false
	}
	return g.controller.Inert()
}

func (s *Service) Descriptor(category domain.Category) (domain.PageDescriptor, error) {
	g, err := s.gallery(category)
	if err != nil {
		return domain.PageDescriptor{}, err
	}
	return g.controller.Descriptor(), nil
}

func (s *Service) Search(ctx context.Context, category domain.Category, query string) ([]domain.CatalogueItem, error) {
	g, err := s.gallery(category)
	if err != nil {
		return nil, err
	}
	return g.engine.Search(ctx, query)
}

func (s *Service) ResetSearch(category domain.Category) error {
	g, err := s.gallery(category)
	if err != nil {
		return err
	}
	g.engine.Reset()
	return nil
}

func (s *Service) Theme(ctx context.Context) (state.Theme, error) {
	return s.preferences.GetTheme(ctx)
}

func (s *Service) SetTheme(ctx context.Context, value string) (state.Theme, error) {
	theme, err := state.ParseTheme(value)
	if err != nil {
		return "", err
	}
	if err := s.preferences.SetTheme(ctx, theme); err != nil {
		return "", fmt.Errorf("failed to save theme: %w", err)
	}
	log.Infof("✅ Theme set to %s", theme)
	return theme, nil
}
