package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"themerr/gallery/internal/config"
	"themerr/gallery/internal/domain"
	"themerr/gallery/internal/proxy"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

var errMissingPageCount = errors.New("pages.json has no page count")

var _ ThemerrClient = (*HTTPClient)(nil)

type ThemerrClient interface {
	GetPagesInfo(ctx context.Context, category domain.Category) (*domain.PagesInfo, error)
	GetPage(ctx context.Context, category domain.Category, pageNumber int) ([]domain.ItemSummary, error)
	GetItemDetail(ctx context.Context, category domain.Category, id int64) (*domain.CatalogueItem, error)
}

// HTTPClient reads the public ThemerrDB JSON catalogue.
type HTTPClient struct {
	rl            ratelimit.Limiter
	baseURL       string
	httpClient    *resty.Client
	proxySupplier proxy.ProxySupplier

	// Circuit breaker for upstream rate limiting
	circuitBreakerMutex sync.RWMutex
	rateLimitedUntil    time.Time
	circuitBreakerDelay time.Duration
}

func NewThemerrClient(cfg config.ThemerrDBConfig, proxySupplier proxy.ProxySupplier) *HTTPClient {
	client := resty.New().
		SetTimeout(cfg.TimeoutDuration()).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json").
		SetHeader("Cache-Control", "no-cache")

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("🔗 Using initial proxy: %s", proxyURL)
		}
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &HTTPClient{
		rl:                  rl,
		baseURL:             strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:          client,
		proxySupplier:       proxySupplier,
		circuitBreakerDelay: time.Minute,
	}
}

func (c *HTTPClient) Close() error {
	return c.httpClient.Close()
}

func (c *HTTPClient) PagesInfoURL(category domain.Category) string {
	return fmt.Sprintf("%s/%s/pages.json", c.baseURL, category)
}

func (c *HTTPClient) PageURL(category domain.Category, pageNumber int) string {
	return fmt.Sprintf("%s/%s/all_page_%d.json", c.baseURL, category, pageNumber)
}

func (c *HTTPClient) ItemDetailURL(category domain.Category, id int64) string {
	return fmt.Sprintf("%s/%s/%s/%d.json", c.baseURL, category, category.Database(), id)
}

func (c *HTTPClient) GetPagesInfo(ctx context.Context, category domain.Category) (*domain.PagesInfo, error) {
	url := c.PagesInfoURL(category)

	var info domain.PagesInfo
	if err := c.fetchJSON(ctx, url, &info); err != nil {
		return nil, err
	}

	if info.Pages == nil || *info.Pages < 0 || (*info.Pages == 0 && info.Count > 0) {
		return nil, &FetchError{URL: url, Err: errMissingPageCount}
	}

	log.Debugf("Fetched page count for %s: %d pages, %d items", category, *info.Pages, info.Count)
	return &info, nil
}

func (c *HTTPClient) GetPage(ctx context.Context, category domain.Category, pageNumber int) ([]domain.ItemSummary, error) {
	url := c.PageURL(category, pageNumber)

	var items []domain.ItemSummary
	if err := c.fetchJSON(ctx, url, &items); err != nil {
		return nil, err
	}

	log.Debugf("Successfully fetched page %d of %s with %d items", pageNumber, category, len(items))
	return items, nil
}

func (c *HTTPClient) GetItemDetail(ctx context.Context, category domain.Category, id int64) (*domain.CatalogueItem, error) {
	url := c.ItemDetailURL(category, id)

	var item domain.CatalogueItem
	if err := c.fetchJSON(ctx, url, &item); err != nil {
		return nil, err
	}
	item.Category = category

	log.Debugf("Successfully fetched item details for %s/%d", category, id)
	return &item, nil
}

func (c *HTTPClient) isCircuitBreakerOpen() bool {
	c.circuitBreakerMutex.RLock()
	now := time.Now()
	wasOpen := now.Before(c.rateLimitedUntil)
	wasTriggered := !c.rateLimitedUntil.IsZero()
	c.circuitBreakerMutex.RUnlock()

	if !wasOpen && wasTriggered {
		c.circuitBreakerMutex.Lock()
		if !c.rateLimitedUntil.IsZero() && now.After(c.rateLimitedUntil) {
			c.rateLimitedUntil = time.Time{}
			log.Infof("✅ Circuit breaker re-enabled - requests are now allowed")
		}
		c.circuitBreakerMutex.Unlock()
	}

	return wasOpen
}

func (c *HTTPClient) triggerCircuitBreaker() {
	c.circuitBreakerMutex.Lock()
	defer c.circuitBreakerMutex.Unlock()

	c.rateLimitedUntil = time.Now().Add(c.circuitBreakerDelay)
	log.Warnf("🚫 Circuit breaker activated! Requests disabled until %v",
		c.rateLimitedUntil.Format("15:04:05"))
}

func (c *HTTPClient) fetchJSON(ctx context.Context, url string, out any) error {
	if c.isCircuitBreakerOpen() {
		log.Debugf("🚫 Request to %s blocked by circuit breaker", url)
		return &FetchError{URL: url, Err: errors.New("circuit breaker is open")}
	}

	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return &FetchError{URL: url, Err: fmt.Errorf("request cancelled: %w", ctx.Err())}
		}
		return &FetchError{URL: url, Err: err}
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		log.Warnf("🚫 Rate limited by upstream for URL: %s", url)
		resp, err = c.retryWithNextProxy(ctx, url)
		if err != nil {
			c.triggerCircuitBreaker()
			return &FetchError{URL: url, StatusCode: http.StatusTooManyRequests, Err: err}
		}
	}

	if resp.IsError() {
		return &FetchError{URL: url, StatusCode: resp.StatusCode(), Err: errors.New(resp.Status())}
	}

	if err := json.Unmarshal([]byte(resp.String()), out); err != nil {
		return &FetchError{URL: url, StatusCode: resp.StatusCode(), Err: fmt.Errorf("decode JSON: %w", err)}
	}

	return nil
}

func (c *HTTPClient) retryWithNextProxy(ctx context.Context, url string) (*resty.Response, error) {
	if c.proxySupplier == nil {
		return nil, errors.New("rate limited and no proxy available")
	}

	newProxy := c.proxySupplier.Get()
	if newProxy == "" {
		return nil, errors.New("rate limited and no proxy available")
	}

	log.Infof("🔄 Switching to new proxy: %s", newProxy)
	c.httpClient.SetProxy(newProxy)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusTooManyRequests {
		return nil, errors.New("rate limited after proxy switch")
	}

	log.Infof("✅ Retry successful with new proxy")
	return resp, nil
}
