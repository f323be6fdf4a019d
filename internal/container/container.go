package container

import (
	"context"
	"fmt"
	"os"

	"themerr/gallery/internal/client"
	"themerr/gallery/internal/config"
	"themerr/gallery/internal/domain"
	"themerr/gallery/internal/progress"
	"themerr/gallery/internal/proxy"
	"themerr/gallery/internal/render"
	"themerr/gallery/internal/service"
	"themerr/gallery/internal/source"
	"themerr/gallery/internal/state"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config      *config.Config
	Client      *client.HTTPClient
	Source      *source.Source
	Preferences state.PreferenceStore
	Renderer    *render.CardRenderer
	Board       *render.Board

	Service *service.Service

	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	categories, err := parseCategories(cfg.Catalogue.Categories)
	if err != nil {
		return nil, err
	}

	httpClient := client.NewThemerrClient(cfg.ThemerrDB, nil)
	proxySupplier := proxy.NewProxySupplier(ctx, cfg.ThemerrDB.Proxies, httpClient.PagesInfoURL(categories[0]))
	if len(cfg.ThemerrDB.Proxies) > 0 {
		httpClient.Close()
		httpClient = client.NewThemerrClient(cfg.ThemerrDB, proxySupplier)
	}
	container.Client = httpClient

	src, err := source.New(httpClient, cfg.Catalogue.DetailCacheSize, cfg.ThemerrDB.MaxWorkers)
	if err != nil {
		return nil, err
	}
	container.Source = src

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		// Test connection
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}

		log.Info("✅ Connected to Redis successfully")
		container.redis = rdb
		container.Preferences = state.NewRedisPreferenceStore(rdb, cfg.Redis.PreferenceKey)
	} else {
		container.Preferences = state.NewMemoryPreferenceStore()
	}

	container.Renderer = render.NewCardRenderer(cfg.Render.OrgName)
	container.Board = render.NewBoard(categories...)

	container.Service = service.NewService(
		src,
		container.Board,
		container.Renderer,
		container.Preferences,
		categories,
		service.Options{
			Debounce:   cfg.Catalogue.Debounce(),
			MaxWorkers: cfg.ThemerrDB.MaxWorkers,
			Threshold:  cfg.Catalogue.SearchThreshold,
			Progress: func(category domain.Category) source.ProgressFunc {
				return progress.Track(progress.NewReporter(os.Stderr), "Loading "+category.GetCategoryName())
			},
		},
	)

	return container, nil
}

func parseCategories(names []string) ([]domain.Category, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no categories configured")
	}

	categories := make([]domain.Category, 0, len(names))
	seen := make(map[domain.Category]bool, len(names))
	for _, name := range names {
		category, err := domain.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		if seen[category] {
			continue
		}
		seen[category] = true
		categories = append(categories, category)
	}
	return categories, nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Debug("Shutting down container...")

	if c.Client != nil {
		c.Client.Close()
	}
	if c.redis != nil {
		c.redis.Close()
	}

	log.Debug("Container shut down successfully")
	return nil
}
