package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ThemerrDB.BaseURL != "https://app.lizardbyte.dev/ThemerrDB" {
		t.Errorf("unexpected default base_url %q", cfg.ThemerrDB.BaseURL)
	}
	if cfg.Catalogue.SearchThreshold != 40 {
		t.Errorf("expected default search_threshold 40, got %d", cfg.Catalogue.SearchThreshold)
	}
	if cfg.Catalogue.Debounce() != 100*time.Millisecond {
		t.Errorf("expected default debounce 100ms, got %v", cfg.Catalogue.Debounce())
	}
	if cfg.Render.Format != "terminal" {
		t.Errorf("expected default render format terminal, got %q", cfg.Render.Format)
	}
	if cfg.Redis.Enabled {
		t.Error("redis should be disabled by default")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gallery.yaml")
	content := `
themerrdb:
  base_url: http://localhost:9999/ThemerrDB
  max_workers: 4
catalogue:
  categories: [games, tv_shows]
  search_threshold: 55
render:
  format: html
  output: out/index.html
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ThemerrDB.BaseURL != "http://localhost:9999/ThemerrDB" {
		t.Errorf("base_url: got %q", cfg.ThemerrDB.BaseURL)
	}
	if cfg.ThemerrDB.MaxWorkers != 4 {
		t.Errorf("max_workers: got %d, want 4", cfg.ThemerrDB.MaxWorkers)
	}
	if len(cfg.Catalogue.Categories) != 2 || cfg.Catalogue.Categories[1] != "tv_shows" {
		t.Errorf("categories: got %v", cfg.Catalogue.Categories)
	}
	if cfg.Catalogue.SearchThreshold != 55 {
		t.Errorf("search_threshold: got %d, want 55", cfg.Catalogue.SearchThreshold)
	}
	if cfg.Render.Format != "html" || cfg.Render.Output != "out/index.html" {
		t.Errorf("render: got %+v", cfg.Render)
	}
	// untouched keys keep their defaults
	if cfg.Catalogue.DetailCacheSize != 1024 {
		t.Errorf("detail_cache_size: got %d, want 1024", cfg.Catalogue.DetailCacheSize)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CATALOGUE_SEARCH_THRESHOLD", "70")
	t.Setenv("REDIS_HOST", "cache.internal")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Catalogue.SearchThreshold != 70 {
		t.Errorf("search_threshold: got %d, want 70", cfg.Catalogue.SearchThreshold)
	}
	if cfg.Redis.Addr() != "cache.internal:6379" {
		t.Errorf("redis addr: got %q", cfg.Redis.Addr())
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	bad := *cfg
	bad.Catalogue.SearchThreshold = 101
	if err := bad.Validate(); err == nil {
		t.Error("expected threshold above 100 to be rejected")
	}

	bad = *cfg
	bad.Render.Format = "pdf"
	if err := bad.Validate(); err == nil {
		t.Error("expected unknown render format to be rejected")
	}

	bad = *cfg
	bad.ThemerrDB.MaxWorkers = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected zero max_workers to be rejected")
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
