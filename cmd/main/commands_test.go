package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"themerr/gallery/internal/domain"
	"themerr/gallery/internal/state"

	"github.com/PuerkitoBio/goquery"
)

// catalogueServer serves a small catalogue; paths under any of failing
// answer 500.
func catalogueServer(t *testing.T, failing ...string) *httptest.Server {
	t.Helper()

	files := map[string]string{
		"/games/pages.json":           `{"count": 2, "pages": 1}`,
		"/games/all_page_1.json":      `[{"id": 740, "title": "Halo"}, {"id": 1020, "title": "Portal"}]`,
		"/games/igdb/740.json":        `{"id": 740, "name": "Halo", "release_dates": [{"y": 2001}]}`,
		"/games/igdb/1020.json":       `{"id": 1020, "name": "Portal", "release_dates": [{"y": 2007}]}`,
		"/movies/pages.json":          `{"count": 1, "pages": 1}`,
		"/movies/all_page_1.json":     `[{"id": 348, "title": "Alien"}]`,
		"/movies/themoviedb/348.json": `{"id": 348, "title": "Alien", "release_date": "1979-05-25"}`,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, prefix := range failing {
			if strings.HasPrefix(r.URL.Path, prefix) {
				http.Error(w, "upstream unavailable", http.StatusInternalServerError)
				return
			}
		}
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	chdir(t, t.TempDir())
	t.Setenv("THEMERRDB_BASE_URL", srv.URL)
	t.Setenv("THEMERRDB_MAX_RETRIES", "0")
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoadCommand(t *testing.T) {
	catalogueServer(t)

	out, err := run(t, "load")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Games (2)", "Halo (2001)", "Portal (2007)", "Movies (1)", "Alien (1979)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLoadCommandPrintsHealthyCategoriesWhenOneFails(t *testing.T) {
	catalogueServer(t, "/movies/")

	for _, args := range [][]string{
		{"load"},
		{"load", "-c", "games", "-c", "movies", "-p", "2"},
	} {
		out, err := run(t, args...)
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		for _, want := range []string{"Games (2)", "Halo (2001)", "Portal (2007)", "Movies (0)"} {
			if !strings.Contains(out, want) {
				t.Errorf("%v: output missing %q:\n%s", args, want, out)
			}
		}
	}
}

func TestSearchCommandWritesHTML(t *testing.T) {
	catalogueServer(t)
	path := filepath.Join(t.TempDir(), "board.html")

	if _, err := run(t, "search", "--category", "games", "--format", "html", "-o", path, "portal"); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		t.Fatal(err)
	}
	titles := doc.Find("#games-container .card-title")
	if titles.Length() != 1 || !strings.Contains(titles.Text(), "Portal") {
		t.Errorf("unexpected titles %q", titles.Text())
	}
}

func TestThemeCommand(t *testing.T) {
	catalogueServer(t)

	out, err := run(t, "theme")
	if err != nil || strings.TrimSpace(out) != string(state.ThemeAuto) {
		t.Errorf("got %q, %v", out, err)
	}

	out, err = run(t, "theme", "light")
	if err != nil || strings.TrimSpace(out) != string(state.ThemeLight) {
		t.Errorf("got %q, %v", out, err)
	}

	if _, err := run(t, "theme", "sepia"); !errors.Is(err, state.ErrInvalidPreference) {
		t.Errorf("expected ErrInvalidPreference, got %v", err)
	}
}

func TestUnknownCategory(t *testing.T) {
	catalogueServer(t)

	if _, err := run(t, "load", "--category", "books"); !errors.Is(err, domain.ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}

// chdir changes the working directory for the duration of the test and
// restores the previous one on cleanup (equivalent of testing.T.Chdir).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restoring working directory failed: %v", err)
		}
	})
}
