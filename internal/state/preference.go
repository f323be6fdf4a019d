package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

var ErrInvalidPreference = errors.New("invalid theme preference")

type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeAuto, ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPreference, s)
	}
}

// PreferenceStore holds the single persisted theme key. A missing or
// unreadable value reads as ThemeAuto.
type PreferenceStore interface {
	GetTheme(ctx context.Context) (Theme, error)
	SetTheme(ctx context.Context, theme Theme) error
}

type memoryPreferenceStore struct {
	mu    sync.RWMutex
	theme Theme
}

func NewMemoryPreferenceStore() PreferenceStore {
	return &memoryPreferenceStore{theme: ThemeAuto}
}

func (s *memoryPreferenceStore) GetTheme(ctx context.Context) (Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme, nil
}

func (s *memoryPreferenceStore) SetTheme(ctx context.Context, theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	return nil
}

type redisPreferenceStore struct {
	redisClient *redis.Client
	key         string
}

func NewRedisPreferenceStore(redisClient *redis.Client, key string) PreferenceStore {
	return &redisPreferenceStore{
		redisClient: redisClient,
		key:         key,
	}
}

func (s *redisPreferenceStore) GetTheme(ctx context.Context) (Theme, error) {
	val, err := s.redisClient.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ThemeAuto, nil
		}
		return ThemeAuto, fmt.Errorf("failed to get theme preference: %w", err)
	}

	theme, err := ParseTheme(val)
	if err != nil {
		return ThemeAuto, nil
	}
	return theme, nil
}

func (s *redisPreferenceStore) SetTheme(ctx context.Context, theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	if err := s.redisClient.Set(ctx, s.key, string(theme), 0).Err(); err != nil {
		return fmt.Errorf("failed to set theme preference: %w", err)
	}
	return nil
}
