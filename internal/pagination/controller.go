// Package pagination drives the "load more" flow of one category.
package pagination

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"themerr/gallery/internal/domain"
	"themerr/gallery/internal/render"
	"themerr/gallery/internal/source"
	"themerr/gallery/internal/state"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const DefaultDebounce = 100 * time.Millisecond

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusExhausted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

type Outcome int

const (
	// OutcomeLoaded: the page was rendered completely and the cursor advanced.
	OutcomeLoaded Outcome = iota
	// OutcomePartial: the page was fetched but some details failed; the
	// cursor stays and the next trigger fills only the empty slots.
	OutcomePartial
	// OutcomeRejected: a load is outstanding or the debounce window is active.
	OutcomeRejected
	// OutcomeExhausted: every page has been consumed; the trigger is inert.
	OutcomeExhausted
	// OutcomeFailed: the page count or the page itself could not be fetched.
	OutcomeFailed
)

type Result struct {
	Outcome  Outcome
	Page     int
	Rendered int
	Failed   int
}

type Options struct {
	Debounce   time.Duration
	Clock      clockwork.Clock
	MaxWorkers int
}

// pendingPage is a fetched page whose containers are allocated but not all
// filled yet.
type pendingPage struct {
	number int
	items  []domain.ItemSummary
	slots  []*render.Container
	filled []bool
}

// Controller is the per-category pagination state machine:
// Idle(n) -> Loading -> Idle(n+1) ... -> Exhausted.
type Controller struct {
	src      *source.Source
	st       *state.CategoryState
	root     *render.Container
	renderer render.Renderer

	clock      clockwork.Clock
	debounce   time.Duration
	maxWorkers int

	mu          sync.Mutex
	status      Status
	lastTrigger time.Time
	triggered   bool
	pending     *pendingPage
}

func NewController(src *source.Source, st *state.CategoryState, root *render.Container, renderer render.Renderer, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = 10
	}

	return &Controller{
		src:        src,
		st:         st,
		root:       root,
		renderer:   renderer,
		clock:      opts.Clock,
		debounce:   opts.Debounce,
		maxWorkers: opts.MaxWorkers,
		status:     StatusIdle,
	}
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Inert reports whether the load trigger should be hidden.
func (c *Controller) Inert() bool {
	return c.Status() == StatusExhausted
}

func (c *Controller) Descriptor() domain.PageDescriptor {
	return c.st.Descriptor()
}

// Load is the explicit "load more" action.
func (c *Controller) Load(ctx context.Context) (Result, error) {
	return c.trigger(ctx)
}

// OnScroll is called when the load trigger's visibility changes; only
// becoming visible loads.
func (c *Controller) OnScroll(ctx context.Context, visible bool) (Result, error) {
	if !visible {
		return Result{Outcome: OutcomeRejected, Page: c.st.Cursor()}, nil
	}
	return c.trigger(ctx)
}

func (c *Controller) trigger(ctx context.Context) (Result, error) {
	category := c.st.Category()

	c.mu.Lock()
	if c.status == StatusExhausted {
		c.mu.Unlock()
		return Result{Outcome: OutcomeExhausted, Page: c.st.Cursor()}, nil
	}
	now := c.clock.Now()
	if c.status == StatusLoading || (c.triggered && now.Sub(c.lastTrigger) < c.debounce) {
		status := c.status
		c.mu.Unlock()
		log.Debugf("🚫 Load trigger for %s rejected (status %s)", category, status)
		return Result{Outcome: OutcomeRejected, Page: c.st.Cursor()}, nil
	}
	c.status = StatusLoading
	c.lastTrigger = now
	c.triggered = true
	pending := c.pending
	c.mu.Unlock()

	res, pending, err := c.load(ctx, pending)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = pending
	switch {
	case res.Outcome == OutcomeExhausted:
		c.status = StatusExhausted
	case res.Outcome == OutcomeLoaded && c.exhausted():
		c.status = StatusExhausted
		log.Infof("✅ All pages of %s loaded", category)
	default:
		c.status = StatusIdle
	}

	return res, err
}

// exhausted must be called with the page count known.
func (c *Controller) exhausted() bool {
	total, _ := c.st.TotalPages()
	return c.st.Cursor() > total
}

func (c *Controller) load(ctx context.Context, pending *pendingPage) (Result, *pendingPage, error) {
	category := c.st.Category()

	total, err := c.src.TotalPages(ctx, c.st)
	if err != nil {
		log.Errorf("❌ Pagination of %s stalled: %v", category, err)
		return Result{Outcome: OutcomeFailed, Page: c.st.Cursor()}, pending, err
	}

	n := c.st.Cursor()
	if n > total {
		return Result{Outcome: OutcomeExhausted, Page: n}, nil, nil
	}

	if pending == nil || pending.number != n {
		items, err := c.src.Page(ctx, c.st, n)
		if err != nil {
			log.Errorf("❌ Pagination of %s stalled at page %d: %v", category, n, err)
			return Result{Outcome: OutcomeFailed, Page: n}, nil, err
		}
		pending = c.allocate(n, items)
	} else {
		log.Infof("🔄 Retrying %d missing items of page %d for %s", pending.missing(), n, category)
	}

	rendered, failed := c.fill(ctx, pending)
	res := Result{Page: n, Rendered: rendered, Failed: failed}

	if failed > 0 {
		log.Warnf("⚠️ Page %d of %s rendered with %d of %d items missing", n, category, failed, len(pending.items))
		res.Outcome = OutcomePartial
		return res, pending, nil
	}

	c.st.Advance()
	res.Outcome = OutcomeLoaded
	log.Debugf("Loaded page %d of %d for %s (%d items)", n, total, category, rendered)
	return res, nil, nil
}

// allocate creates the page container and one slot per item before any
// detail is fetched, so display order follows fetch order.
func (c *Controller) allocate(n int, items []domain.ItemSummary) *pendingPage {
	page := c.root.Child()
	p := &pendingPage{
		number: n,
		items:  items,
		slots:  make([]*render.Container, len(items)),
		filled: make([]bool, len(items)),
	}
	for i := range items {
		p.slots[i] = page.Child()
	}
	return p
}

func (c *Controller) fill(ctx context.Context, p *pendingPage) (rendered, failed int) {
	category := c.st.Category()

	var ok, bad atomic.Int32
	g := new(errgroup.Group)
	g.SetLimit(c.maxWorkers)

	for i, summary := range p.items {
		if p.filled[i] {
			continue
		}
		i, summary := i, summary
		g.Go(func() error {
			item, err := c.src.ItemDetail(ctx, category, summary.ID)
			if err != nil {
				log.Errorf("❌ Failed to get details for %s %d (%s): %v", category, summary.ID, summary.Title, err)
				bad.Add(1)
				return nil
			}
			if err := c.renderer.Render(item, p.slots[i]); err != nil {
				log.Errorf("❌ Failed to render %s %d: %v", category, summary.ID, err)
				bad.Add(1)
				return nil
			}
			p.filled[i] = true
			ok.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	return int(ok.Load()), int(bad.Load())
}

func (p *pendingPage) missing() int {
	n := 0
	for _, f := range p.filled {
		if !f {
			n++
		}
	}
	return n
}
