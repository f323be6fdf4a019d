// Package fakeclient is an in-memory ThemerrClient for tests.
package fakeclient

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"themerr/gallery/internal/client"
	"themerr/gallery/internal/domain"
)

var ErrInjected = errors.New("injected failure")

type Client struct {
	mu sync.Mutex

	pages   map[domain.Category][][]domain.ItemSummary
	details map[domain.ItemKey]*domain.CatalogueItem

	failPagesInfo map[domain.Category]bool
	failPages     map[string]bool
	failDetails   map[domain.ItemKey]bool

	// Gate, when set, is received from before every page fetch returns.
	Gate chan struct{}

	PagesInfoCalls int
	PageCalls      map[int]int
	DetailCalls    int
}

var _ client.ThemerrClient = (*Client)(nil)

func New() *Client {
	return &Client{
		pages:         make(map[domain.Category][][]domain.ItemSummary),
		details:       make(map[domain.ItemKey]*domain.CatalogueItem),
		failPagesInfo: make(map[domain.Category]bool),
		failPages:     make(map[string]bool),
		failDetails:   make(map[domain.ItemKey]bool),
		PageCalls:     make(map[int]int),
	}
}

// AddPage appends a page of items; each title also gets a detail record.
func (c *Client) AddPage(category domain.Category, items ...domain.ItemSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pages[category] = append(c.pages[category], items)
	for _, it := range items {
		detail := &domain.CatalogueItem{Category: category, ID: it.ID}
		if category == domain.CategoryMovies {
			detail.Title = it.Title
		} else {
			detail.Name = it.Title
		}
		c.details[domain.ItemKey{Category: category, ID: it.ID}] = detail
	}
}

func (c *Client) FailPagesInfo(category domain.Category, fail bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failPagesInfo[category] = fail
}

func (c *Client) FailPage(category domain.Category, n int, fail bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failPages[fmt.Sprintf("%s:%d", category, n)] = fail
}

func (c *Client) FailDetail(category domain.Category, id int64, fail bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failDetails[domain.ItemKey{Category: category, ID: id}] = fail
}

func (c *Client) Calls() (pagesInfo, pages, details int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range c.PageCalls {
		pages += n
	}
	return c.PagesInfoCalls, pages, c.DetailCalls
}

func (c *Client) GetPagesInfo(ctx context.Context, category domain.Category) (*domain.PagesInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.PagesInfoCalls++
	if c.failPagesInfo[category] {
		return nil, &client.FetchError{URL: category.String() + "/pages.json", Err: ErrInjected}
	}

	pages := len(c.pages[category])
	count := 0
	for _, p := range c.pages[category] {
		count += len(p)
	}
	return &domain.PagesInfo{Count: count, Pages: &pages}, nil
}

func (c *Client) GetPage(ctx context.Context, category domain.Category, pageNumber int) ([]domain.ItemSummary, error) {
	c.mu.Lock()
	c.PageCalls[pageNumber]++
	gate := c.Gate
	c.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	url := fmt.Sprintf("%s/all_page_%d.json", category, pageNumber)
	if c.failPages[fmt.Sprintf("%s:%d", category, pageNumber)] {
		return nil, &client.FetchError{URL: url, Err: ErrInjected}
	}
	pages := c.pages[category]
	if pageNumber < 1 || pageNumber > len(pages) {
		return nil, &client.FetchError{URL: url, StatusCode: 404, Err: errors.New("404 Not Found")}
	}
	return append([]domain.ItemSummary(nil), pages[pageNumber-1]...), nil
}

func (c *Client) GetItemDetail(ctx context.Context, category domain.Category, id int64) (*domain.CatalogueItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.DetailCalls++
	key := domain.ItemKey{Category: category, ID: id}
	url := fmt.Sprintf("%s/%s/%d.json", category, category.Database(), id)
	if c.failDetails[key] {
		return nil, &client.FetchError{URL: url, Err: ErrInjected}
	}
	item, ok := c.details[key]
	if !ok {
		return nil, &client.FetchError{URL: url, StatusCode: 404, Err: errors.New("404 Not Found")}
	}
	copied := *item
	return &copied, nil
}
