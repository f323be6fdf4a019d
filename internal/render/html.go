package render

import (
	"html/template"
	"io"

	"themerr/gallery/internal/domain"
	"themerr/gallery/internal/state"
)

var boardTemplate = template.Must(template.New("board").Parse(`<!DOCTYPE html>
<html lang="en" data-bs-theme="{{.Theme}}">
<head>
<meta charset="utf-8">
<title>ThemerrDB</title>
</head>
<body>
{{- range .Sections}}
<section>
<h2>{{.Name}}</h2>
<div id="{{.ID}}-container">
{{- range .Cards}}
<div class="container mb-5 shadow border-0 rounded-0 px-0" data-id="{{.ID}}">
<div class="container py-4 px-1">
<div class="d-table-row g-0">
{{- if .PosterURL}}
<img class="d-table-cell px-3 rounded-0 mx-auto" src="{{.PosterURL}}" alt="" height="200">
{{- end}}
<div class="d-table-cell align-top my-3 px-3 border-start">
<h4 class="card-title mb-3 fw-bolder ms-0 mx-5">{{.Heading}}</h4>
<p class="card-text ms-0 mx-5">{{.Description}}</p>
{{- if .DatabaseURL}}
<a class="database-link" href="{{.DatabaseURL}}" target="_blank">{{.DatabaseName}}</a>
{{- end}}
{{- if .ThemeURL}}
<a class="theme-link" href="{{.ThemeURL}}" target="_blank">YouTube</a>
{{- end}}
</div>
<div class="d-table-cell align-top mx-3">
<a class="edit-link" href="{{.EditURL}}" target="_blank"><button class="btn-danger btn-outline-light rounded-0 btn" type="button">Edit</button></a>
</div>
</div>
</div>
</div>
{{- end}}
</div>
</section>
{{- end}}
</body>
</html>
`))

type htmlCard struct {
	Card
	DatabaseName string
}

type htmlSection struct {
	ID    string
	Name  string
	Cards []htmlCard
}

// WriteHTML writes the board as a static gallery page. The gallery cards are
// designed for a dark background, so auto resolves to dark.
func WriteHTML(w io.Writer, b *Board, theme state.Theme) error {
	data := struct {
		Theme    state.Theme
		Sections []htmlSection
	}{
		Theme: ResolveTheme(theme, true),
	}

	for _, category := range b.Categories() {
		section := htmlSection{
			ID:   category.String(),
			Name: category.GetCategoryName(),
		}
		for _, card := range b.Section(category).Displayed().Cards() {
			section.Cards = append(section.Cards, htmlCard{Card: card, DatabaseName: databaseName(category)})
		}
		data.Sections = append(data.Sections, section)
	}

	return boardTemplate.Execute(w, data)
}

func databaseName(c domain.Category) string {
	if c.Database() == "igdb" {
		return "IGDB"
	}
	return "TMDB"
}
