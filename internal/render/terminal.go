package render

import (
	"fmt"
	"io"
	"strings"

	"themerr/gallery/internal/state"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	border lipgloss.Color
	title  lipgloss.Color
	text   lipgloss.Color
	link   lipgloss.Color
	header lipgloss.Color
}

var (
	darkPalette = palette{
		border: lipgloss.Color("#6e6a86"),
		title:  lipgloss.Color("#e0def4"),
		text:   lipgloss.Color("#908caa"),
		link:   lipgloss.Color("#9ccfd8"),
		header: lipgloss.Color("#eb6f92"),
	}
	lightPalette = palette{
		border: lipgloss.Color("#9893a5"),
		title:  lipgloss.Color("#575279"),
		text:   lipgloss.Color("#797593"),
		link:   lipgloss.Color("#286983"),
		header: lipgloss.Color("#b4637a"),
	}
)

// ResolveTheme turns auto into light or dark.
func ResolveTheme(theme state.Theme, prefersDark bool) state.Theme {
	if theme != state.ThemeAuto {
		return theme
	}
	if prefersDark {
		return state.ThemeDark
	}
	return state.ThemeLight
}

// TerminalPrinter writes a board as bordered cards.
type TerminalPrinter struct {
	w     io.Writer
	width int
	p     palette
}

func NewTerminalPrinter(w io.Writer, theme state.Theme, width int) *TerminalPrinter {
	p := darkPalette
	if ResolveTheme(theme, lipgloss.HasDarkBackground()) == state.ThemeLight {
		p = lightPalette
	}
	if width <= 0 {
		width = 80
	}
	return &TerminalPrinter{w: w, width: width, p: p}
}

func (t *TerminalPrinter) Print(b *Board) error {
	header := lipgloss.NewStyle().Bold(true).Foreground(t.p.header)

	for _, category := range b.Categories() {
		cards := b.Section(category).Displayed().Cards()
		if _, err := fmt.Fprintln(t.w, header.Render(fmt.Sprintf("%s (%d)", category.GetCategoryName(), len(cards)))); err != nil {
			return err
		}
		for _, card := range cards {
			if _, err := fmt.Fprintln(t.w, t.card(card)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *TerminalPrinter) card(c Card) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(t.p.title)
	text := lipgloss.NewStyle().Foreground(t.p.text)
	link := lipgloss.NewStyle().Foreground(t.p.link).Underline(true)

	lines := []string{title.Render(c.Heading())}
	if c.Description != "" {
		lines = append(lines, text.Render(c.Description))
	}
	for _, u := range []string{c.DatabaseURL, c.ThemeURL} {
		if u != "" {
			lines = append(lines, link.Render(u))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.p.border).
		Padding(0, 1).
		Width(t.width - 2).
		Render(strings.Join(lines, "\n"))
}
