package state

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestParseTheme(t *testing.T) {
	for _, s := range []string{"auto", "light", "dark"} {
		if _, err := ParseTheme(s); err != nil {
			t.Errorf("ParseTheme(%q): %v", s, err)
		}
	}
	if _, err := ParseTheme("sepia"); !errors.Is(err, ErrInvalidPreference) {
		t.Errorf("ParseTheme(sepia) error = %v, want ErrInvalidPreference", err)
	}
}

func TestMemoryPreferenceStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryPreferenceStore()

	theme, err := s.GetTheme(ctx)
	if err != nil || theme != ThemeAuto {
		t.Fatalf("GetTheme() = %q, %v; want auto", theme, err)
	}

	if err := s.SetTheme(ctx, ThemeDark); err != nil {
		t.Fatal(err)
	}
	if theme, _ := s.GetTheme(ctx); theme != ThemeDark {
		t.Errorf("GetTheme() = %q, want dark", theme)
	}

	if err := s.SetTheme(ctx, Theme("neon")); !errors.Is(err, ErrInvalidPreference) {
		t.Errorf("SetTheme(neon) error = %v", err)
	}
	if theme, _ := s.GetTheme(ctx); theme != ThemeDark {
		t.Errorf("invalid SetTheme changed the stored value to %q", theme)
	}
}

func TestRedisPreferenceStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	key := "themerr:test:theme"
	rdb.Del(ctx, key)
	defer rdb.Del(ctx, key)

	s := NewRedisPreferenceStore(rdb, key)

	if theme, err := s.GetTheme(ctx); err != nil || theme != ThemeAuto {
		t.Fatalf("GetTheme() on empty key = %q, %v", theme, err)
	}
	if err := s.SetTheme(ctx, ThemeLight); err != nil {
		t.Fatal(err)
	}
	if theme, _ := s.GetTheme(ctx); theme != ThemeLight {
		t.Errorf("GetTheme() = %q, want light", theme)
	}

	rdb.Set(ctx, key, "garbage", 0)
	if theme, err := s.GetTheme(ctx); err != nil || theme != ThemeAuto {
		t.Errorf("garbage value should read as auto, got %q, %v", theme, err)
	}
}
