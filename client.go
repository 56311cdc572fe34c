// Package helixir is a client for the Helixir market data API. It
// covers token, LP, farm, wallet and social endpoints, splits ranged
// queries transparently to honor the API's candle budget, and maps
// responses onto registered entity types.
package helixir

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"helixir/catalog"
	"helixir/internal/assetcache"
	"helixir/internal/logger"
	"helixir/models"
)

// Client talks to one Helixir API deployment. It is safe for
// concurrent use.
type Client struct {
	cfg        Config
	baseURL    *url.URL
	httpClient *http.Client

	registry *models.Registry
	catalog  *catalog.Registry

	warn func(string)
	now  func() time.Time

	assetsMu sync.Mutex
	assets   []Asset
	cache    *assetcache.Store
}

// NewClient builds a client from cfg. Zero fields fall back to
// defaults; see Config.
func NewClient(cfg Config) (*Client, error) {
	if !cfg.defaulted {
		cfg.applyDefaults(nil)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	logger.SetLevel(cfg.LogLevel)

	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("parsing base_url failed: %w", err)
	}
	base = base.JoinPath(cfg.APIVersion)

	cat := catalog.NewRegistry()
	if strings.TrimSpace(cfg.CatalogPath) != "" {
		cat, err = catalog.NewRegistryFromFile(cfg.CatalogPath, cfg.WatchCatalog)
		if err != nil {
			return nil, err
		}
	}

	c := &Client{
		cfg:        cfg,
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.timeout()},
		registry:   models.Default(),
		catalog:    cat,
		now:        time.Now,
	}
	c.warn = cfg.OnWarning
	if c.warn == nil {
		c.warn = func(msg string) { logger.Warnf("%s", msg) }
	}

	if path := strings.TrimSpace(cfg.AssetCachePath); path != "" {
		cache, err := assetcache.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening asset cache failed: %w", err)
		}
		c.cache = cache
	}
	return c, nil
}

// Catalog exposes the reference tables the client validates against.
func (c *Client) Catalog() *catalog.Registry {
	return c.catalog
}

// SetHTTPClient replaces the underlying HTTP client, for tests and
// custom transports.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// Close releases client resources. The client must not be used
// afterwards.
func (c *Client) Close() error {
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}

func (c *Client) tables() catalog.Tables {
	return c.catalog.Tables()
}

func (c *Client) warnf(format string, args ...any) {
	c.warn(fmt.Sprintf(format, args...))
}
