package render

import (
	"sync"

	"themerr/gallery/internal/domain"
)

// Section is a category's part of the board: the paginated items and the
// latest search results, only one of which is displayed.
type Section struct {
	Category domain.Category

	items   *Container
	results *Container

	mu             sync.Mutex
	showingResults bool
}

func newSection(category domain.Category) *Section {
	return &Section{
		Category: category,
		items:    &Container{},
		results:  &Container{},
	}
}

func (s *Section) Items() *Container {
	return s.items
}

func (s *Section) Results() *Container {
	return s.results
}

func (s *Section) ShowResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showingResults = true
}

func (s *Section) ShowItems() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showingResults = false
}

func (s *Section) ShowingResults() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showingResults
}

// Displayed is the container currently on screen.
func (s *Section) Displayed() *Container {
	if s.ShowingResults() {
		return s.results
	}
	return s.items
}

// Board holds one section per category, in display order.
type Board struct {
	mu       sync.Mutex
	sections map[domain.Category]*Section
	order    []domain.Category
}

func NewBoard(categories ...domain.Category) *Board {
	b := &Board{sections: make(map[domain.Category]*Section)}
	for _, c := range categories {
		b.Section(c)
	}
	return b
}

// Section returns the category's section, creating it on first use.
func (b *Board) Section(category domain.Category) *Section {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.sections[category]; ok {
		return s
	}
	s := newSection(category)
	b.sections[category] = s
	b.order = append(b.order, category)
	return s
}

func (b *Board) Categories() []domain.Category {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.Category(nil), b.order...)
}
