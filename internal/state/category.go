package state

import (
	"slices"
	"sync"

	"themerr/gallery/internal/domain"
)

// CategoryState is the mutable per-category state shared by a category's
// pagination controller and search engine: the memoized page count, the
// page cache (never evicted) and the pagination cursor.
type CategoryState struct {
	category domain.Category

	mu         sync.RWMutex
	totalPages int
	known      bool
	pages      map[int][]domain.ItemSummary
	cursor     int
}

func NewCategoryState(category domain.Category) *CategoryState {
	return &CategoryState{
		category: category,
		pages:    make(map[int][]domain.ItemSummary),
		cursor:   1,
	}
}

func (s *CategoryState) Category() domain.Category {
	return s.category
}

// TotalPages returns the memoized page count and whether it is known yet.
func (s *CategoryState) TotalPages() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalPages, s.known
}

// SetTotalPages records the page count. It is invariant once set; later
// calls are ignored.
func (s *CategoryState) SetTotalPages(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.known {
		return
	}
	s.totalPages = n
	s.known = true
}

func (s *CategoryState) Page(n int) ([]domain.ItemSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, ok := s.pages[n]
	return items, ok
}

// StorePage caches a page. The first stored copy wins.
func (s *CategoryState) StorePage(n int, items []domain.ItemSummary) []domain.ItemSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.pages[n]; ok {
		return existing
	}
	s.pages[n] = items
	return items
}

// MissingPages lists the page numbers in [1, total] not cached yet.
func (s *CategoryState) MissingPages() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var missing []int
	for n := 1; n <= s.totalPages; n++ {
		if _, ok := s.pages[n]; !ok {
			missing = append(missing, n)
		}
	}
	return missing
}

// CachedPages returns the cached page numbers in ascending order.
func (s *CategoryState) CachedPages() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nums := make([]int, 0, len(s.pages))
	for n := range s.pages {
		nums = append(nums, n)
	}
	slices.Sort(nums)
	return nums
}

// Cursor is the next page the pagination controller will load.
func (s *CategoryState) Cursor() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

func (s *CategoryState) Advance() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor++
	return s.cursor
}

func (s *CategoryState) Descriptor() domain.PageDescriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.PageDescriptor{
		Category:   s.category,
		PageNumber: s.cursor,
		TotalPages: s.totalPages,
	}
}
