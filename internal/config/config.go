package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	ThemerrDB ThemerrDBConfig `mapstructure:"themerrdb"`
	Catalogue CatalogueConfig `mapstructure:"catalogue"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Render    RenderConfig    `mapstructure:"render"`
	Log       LogConfig       `mapstructure:"log"`
}

// ThemerrDBConfig holds the catalogue endpoint configuration
type ThemerrDBConfig struct {
	BaseURL              string   `mapstructure:"base_url"`
	Timeout              int      `mapstructure:"timeout"`
	MaxRetries           int      `mapstructure:"max_retries"`
	MaxWorkers           int      `mapstructure:"max_workers"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	UserAgent            string   `mapstructure:"user_agent"`
	Proxies              []string `mapstructure:"proxies"`
}

func (c ThemerrDBConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// CatalogueConfig holds pagination and search tuning
type CatalogueConfig struct {
	Categories      []string `mapstructure:"categories"`
	SearchThreshold int      `mapstructure:"search_threshold"`
	DebounceMS      int      `mapstructure:"debounce_ms"`
	DetailCacheSize int      `mapstructure:"detail_cache_size"`
}

func (c CatalogueConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// RedisConfig holds Redis connection details for the preference store
type RedisConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Password      string `mapstructure:"password"`
	Database      int    `mapstructure:"database"`
	PreferenceKey string `mapstructure:"preference_key"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RenderConfig controls how the board is written out
type RenderConfig struct {
	Format  string `mapstructure:"format"`
	Output  string `mapstructure:"output"`
	OrgName string `mapstructure:"org_name"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the YAML file at path (or config.yaml in the
// current directory when path is empty) with environment variable overrides.
// A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.ThemerrDB.BaseURL == "" {
		return fmt.Errorf("themerrdb.base_url must not be empty")
	}
	if c.Catalogue.SearchThreshold < 1 || c.Catalogue.SearchThreshold > 100 {
		return fmt.Errorf("catalogue.search_threshold must be within [1, 100], got %d", c.Catalogue.SearchThreshold)
	}
	if c.ThemerrDB.MaxWorkers < 1 {
		return fmt.Errorf("themerrdb.max_workers must be positive, got %d", c.ThemerrDB.MaxWorkers)
	}
	switch c.Render.Format {
	case "terminal", "html":
	default:
		return fmt.Errorf("render.format must be terminal or html, got %q", c.Render.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("themerrdb.base_url", "https://app.lizardbyte.dev/ThemerrDB")
	v.SetDefault("themerrdb.timeout", 30)
	v.SetDefault("themerrdb.max_retries", 3)
	v.SetDefault("themerrdb.max_workers", 10)
	v.SetDefault("themerrdb.max_requests_per_second", 20)
	v.SetDefault("themerrdb.user_agent", "themerr-gallery/1.0")
	v.SetDefault("themerrdb.proxies", []string{})

	v.SetDefault("catalogue.categories", []string{"games", "movies"})
	v.SetDefault("catalogue.search_threshold", 40)
	v.SetDefault("catalogue.debounce_ms", 100)
	v.SetDefault("catalogue.detail_cache_size", 1024)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.preference_key", "themerr:preference:theme")

	v.SetDefault("render.format", "terminal")
	v.SetDefault("render.output", "")
	v.SetDefault("render.org_name", "LizardByte")

	v.SetDefault("log.level", "info")
}
