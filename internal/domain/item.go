package domain

import (
	"fmt"
	"strings"
)

// ItemSummary is one entry of an all_page_N.json file.
type ItemSummary struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	ImdbID string `json:"imdb_id,omitempty"`
}

type ItemKey struct {
	Category Category
	ID       int64
}

type Cover struct {
	URL string `json:"url"`
}

type ReleaseDate struct {
	Y int `json:"y"`
}

// CatalogueItem is a fully resolved detail record. Which fields are set
// depends on the category: igdb records carry name/cover/release_dates/summary,
// themoviedb records carry title or name/poster_path/overview.
type CatalogueItem struct {
	Category Category `json:"-"`

	ID           int64         `json:"id"`
	Name         string        `json:"name,omitempty"`
	Title        string        `json:"title,omitempty"`
	Slug         string        `json:"slug,omitempty"`
	Summary      string        `json:"summary,omitempty"`
	Overview     string        `json:"overview,omitempty"`
	URL          string        `json:"url,omitempty"`
	Cover        *Cover        `json:"cover,omitempty"`
	PosterPath   string        `json:"poster_path,omitempty"`
	ReleaseDate  string        `json:"release_date,omitempty"`
	FirstAirDate string        `json:"first_air_date,omitempty"`
	ReleaseDates []ReleaseDate `json:"release_dates,omitempty"`
	ImdbID       string        `json:"imdb_id,omitempty"`

	YoutubeThemeURL    string `json:"youtube_theme_url,omitempty"`
	YoutubeThemeAdded  int64  `json:"youtube_theme_added,omitempty"`
	YoutubeThemeEdited int64  `json:"youtube_theme_edited,omitempty"`
}

func (i *CatalogueItem) Key() ItemKey {
	return ItemKey{Category: i.Category, ID: i.ID}
}

// DisplayTitle prefers title (themoviedb movies) and falls back to name.
func (i *CatalogueItem) DisplayTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Name
}

// Year returns the earliest release year, or "" when the record has none.
func (i *CatalogueItem) Year() string {
	if len(i.ReleaseDates) > 0 {
		found := 0
		for _, rd := range i.ReleaseDates {
			if rd.Y == 0 {
				continue
			}
			if found == 0 || rd.Y < found {
				found = rd.Y
			}
		}
		if found != 0 {
			return fmt.Sprintf("%d", found)
		}
	}

	for _, date := range []string{i.ReleaseDate, i.FirstAirDate} {
		if year, _, _ := strings.Cut(date, "-"); year != "" {
			return year
		}
	}
	return ""
}

func (i *CatalogueItem) Description() string {
	if i.Summary != "" {
		return i.Summary
	}
	return i.Overview
}

func (i *CatalogueItem) PosterURL() string {
	if i.Cover != nil && i.Cover.URL != "" {
		u := strings.Replace(i.Cover.URL, "/t_thumb/", "/t_cover_big/", 1)
		if strings.HasPrefix(u, "//") {
			u = "https:" + u
		}
		return u
	}
	if i.PosterPath != "" {
		return "https://image.tmdb.org/t/p/w185" + i.PosterPath
	}
	return ""
}

// DatabaseURL links to the record on its upstream database.
func (i *CatalogueItem) DatabaseURL() string {
	if i.Category.Database() == "igdb" {
		return i.URL
	}

	switch i.Category {
	case CategoryMovies:
		return fmt.Sprintf("https://www.themoviedb.org/movie/%d", i.ID)
	case CategoryMovieCollections:
		return fmt.Sprintf("https://www.themoviedb.org/collection/%d", i.ID)
	case CategoryTVShows:
		return fmt.Sprintf("https://www.themoviedb.org/tv/%d", i.ID)
	default:
		return i.URL
	}
}

type ScoredItem struct {
	Item  ItemSummary
	Score int
}
