package domain

import (
	"errors"
	"testing"
)

func TestCatalogueItemYear(t *testing.T) {
	tests := []struct {
		name     string
		item     CatalogueItem
		expected string
	}{
		{
			name:     "lowest of several release dates",
			item:     CatalogueItem{ReleaseDates: []ReleaseDate{{Y: 2004}, {Y: 1998}, {Y: 2001}}},
			expected: "1998",
		},
		{
			name:     "zero years are ignored",
			item:     CatalogueItem{ReleaseDates: []ReleaseDate{{Y: 0}, {Y: 2010}}},
			expected: "2010",
		},
		{
			name:     "movie release date",
			item:     CatalogueItem{ReleaseDate: "1979-05-25"},
			expected: "1979",
		},
		{
			name:     "tv first air date",
			item:     CatalogueItem{FirstAirDate: "2008-01-20"},
			expected: "2008",
		},
		{
			name:     "no date at all",
			item:     CatalogueItem{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Year(); got != tt.expected {
				t.Errorf("Year() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCatalogueItemPosterURL(t *testing.T) {
	game := CatalogueItem{Cover: &Cover{URL: "//images.igdb.com/igdb/image/upload/t_thumb/co1wyy.jpg"}}
	if got, want := game.PosterURL(), "https://images.igdb.com/igdb/image/upload/t_cover_big/co1wyy.jpg"; got != want {
		t.Errorf("igdb poster = %q, want %q", got, want)
	}

	movie := CatalogueItem{PosterPath: "/vfrQk5IPloGg1v9Rzbh2Eg3VGyM.jpg"}
	if got, want := movie.PosterURL(), "https://image.tmdb.org/t/p/w185/vfrQk5IPloGg1v9Rzbh2Eg3VGyM.jpg"; got != want {
		t.Errorf("tmdb poster = %q, want %q", got, want)
	}

	if got := (&CatalogueItem{}).PosterURL(); got != "" {
		t.Errorf("empty record poster = %q, want empty", got)
	}
}

func TestCatalogueItemDatabaseURL(t *testing.T) {
	tests := []struct {
		item     CatalogueItem
		expected string
	}{
		{CatalogueItem{Category: CategoryGames, URL: "https://www.igdb.com/games/halo"}, "https://www.igdb.com/games/halo"},
		{CatalogueItem{Category: CategoryMovies, ID: 348}, "https://www.themoviedb.org/movie/348"},
		{CatalogueItem{Category: CategoryMovieCollections, ID: 8091}, "https://www.themoviedb.org/collection/8091"},
		{CatalogueItem{Category: CategoryTVShows, ID: 1396}, "https://www.themoviedb.org/tv/1396"},
	}

	for _, tt := range tests {
		if got := tt.item.DatabaseURL(); got != tt.expected {
			t.Errorf("%s DatabaseURL() = %q, want %q", tt.item.Category, got, tt.expected)
		}
	}
}

func TestDisplayTitleFallsBackToName(t *testing.T) {
	if got := (&CatalogueItem{Name: "Halo"}).DisplayTitle(); got != "Halo" {
		t.Errorf("DisplayTitle() = %q, want Halo", got)
	}
	if got := (&CatalogueItem{Name: "x", Title: "Alien"}).DisplayTitle(); got != "Alien" {
		t.Errorf("DisplayTitle() = %q, want Alien", got)
	}
}

func TestParseCategory(t *testing.T) {
	for _, in := range []string{"movies", "movie", " Movies "} {
		c, err := ParseCategory(in)
		if err != nil {
			t.Fatalf("ParseCategory(%q): %v", in, err)
		}
		if c != CategoryMovies {
			t.Errorf("ParseCategory(%q) = %q, want movies", in, c)
		}
	}

	if _, err := ParseCategory("books"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("ParseCategory(books) error = %v, want ErrUnknownCategory", err)
	}
}
