package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCategory = errors.New("unknown category")

type Category string

func (c Category) String() string {
	return string(c)
}

const (
	CategoryGames            Category = "games"
	CategoryGameCollections  Category = "game_collections"
	CategoryGameFranchises   Category = "game_franchises"
	CategoryMovies           Category = "movies"
	CategoryMovieCollections Category = "movie_collections"
	CategoryTVShows          Category = "tv_shows"
)

var Categories = []Category{
	CategoryGames,
	CategoryGameCollections,
	CategoryGameFranchises,
	CategoryMovies,
	CategoryMovieCollections,
	CategoryTVShows,
}

// ParseCategory accepts the path form ("game_collections") as well as the
// singular item type ("game_collection").
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if s == c.String() || s == c.ItemType() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Database is the upstream metadata source a category's records come from.
func (c Category) Database() string {
	switch c {
	case CategoryGames, CategoryGameCollections, CategoryGameFranchises:
		return "igdb"
	default:
		return "themoviedb"
	}
}

func (c Category) GetCategoryName() string {
	switch c {
	case CategoryGames:
		return "Games"
	case CategoryGameCollections:
		return "Game Collections"
	case CategoryGameFranchises:
		return "Game Franchises"
	case CategoryMovies:
		return "Movies"
	case CategoryMovieCollections:
		return "Movie Collections"
	case CategoryTVShows:
		return "TV Shows"
	default:
		return "Unknown"
	}
}

// ItemType is the singular name used by issue labels ("game", "tv_show").
func (c Category) ItemType() string {
	switch c {
	case CategoryGames:
		return "game"
	case CategoryGameCollections:
		return "game_collection"
	case CategoryGameFranchises:
		return "game_franchise"
	case CategoryMovies:
		return "movie"
	case CategoryMovieCollections:
		return "movie_collection"
	case CategoryTVShows:
		return "tv_show"
	default:
		return ""
	}
}
