// Package render turns detail records into cards laid out on a board of
// per-category containers.
package render

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"themerr/gallery/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// Renderer draws one fully resolved record into its container.
type Renderer interface {
	Render(item *domain.CatalogueItem, c *Container) error
}

// Container is an ordered node of the board. Children are allocated up front
// so display order does not depend on when each child is filled.
type Container struct {
	mu       sync.Mutex
	children []*Container
	card     *Card
}

// Child allocates and appends an empty child container.
func (c *Container) Child() *Container {
	c.mu.Lock()
	defer c.mu.Unlock()

	child := &Container{}
	c.children = append(c.children, child)
	return child
}

func (c *Container) SetCard(card Card) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.card = &card
}

// Clear drops every child and card.
func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.children = nil
	c.card = nil
}

func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.children)
}

// Cards returns every card below c in display order; empty slots are skipped.
func (c *Container) Cards() []Card {
	c.mu.Lock()
	card := c.card
	children := append([]*Container(nil), c.children...)
	c.mu.Unlock()

	var cards []Card
	if card != nil {
		cards = append(cards, *card)
	}
	for _, child := range children {
		cards = append(cards, child.Cards()...)
	}
	return cards
}

type Card struct {
	Category    domain.Category
	ID          int64
	Title       string
	Year        string
	PosterURL   string
	Description string
	DatabaseURL string
	ThemeURL    string
	EditURL     string
}

// Heading is the card title with the release year, when known.
func (c Card) Heading() string {
	if c.Year == "" {
		return c.Title
	}
	return fmt.Sprintf("%s (%s)", c.Title, c.Year)
}

// CardRenderer builds cards linking back to the ThemerrDB issue forms of
// the given GitHub organization.
type CardRenderer struct {
	orgName  string
	database string
}

var _ Renderer = (*CardRenderer)(nil)

func NewCardRenderer(orgName string) *CardRenderer {
	return &CardRenderer{
		orgName:  orgName,
		database: "ThemerrDB",
	}
}

func (r *CardRenderer) Render(item *domain.CatalogueItem, c *Container) error {
	if item == nil {
		return fmt.Errorf("nothing to render")
	}
	c.SetCard(r.Card(item))
	return nil
}

func (r *CardRenderer) Card(item *domain.CatalogueItem) Card {
	return Card{
		Category:    item.Category,
		ID:          item.ID,
		Title:       item.DisplayTitle(),
		Year:        item.Year(),
		PosterURL:   item.PosterURL(),
		Description: plainText(item.Description()),
		DatabaseURL: item.DatabaseURL(),
		ThemeURL:    item.YoutubeThemeURL,
		EditURL:     r.EditURL(item),
	}
}

// EditURL opens a prefilled theme request issue for the item.
func (r *CardRenderer) EditURL(item *domain.CatalogueItem) string {
	itemType := item.Category.ItemType()
	label := strings.ToUpper(strings.ReplaceAll(itemType, "_", " "))

	q := url.Values{}
	q.Set("assignees", "")
	q.Set("labels", "request-"+strings.ReplaceAll(itemType, "_", "-"))
	q.Set("template", "theme.yml")
	q.Set("title", fmt.Sprintf("[%s]: %s", label, item.DisplayTitle()))
	q.Set("database_url", item.DatabaseURL())

	return fmt.Sprintf("https://github.com/%s/%s/issues/new?%s", r.orgName, r.database, q.Encode())
}

// plainText strips markup some upstream summaries carry and collapses
// whitespace.
func plainText(s string) string {
	if strings.ContainsAny(s, "<&") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}
