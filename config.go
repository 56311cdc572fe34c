package helixir

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the hosted API endpoint.
const DefaultBaseURL = "https://api.helixir.io/"

// DefaultAPIVersion is the API version path segment.
const DefaultAPIVersion = "v1"

const (
	defaultTimeoutSeconds       = 60
	defaultRetryAttempts        = 5
	defaultLogLevel             = "info"
	defaultAssetCacheTTLSeconds = 86400
)

// Config carries client settings. The zero value plus defaults is a
// working anonymous configuration; load from a file with LoadConfig
// or fill fields directly and pass to NewClient.
type Config struct {
	// AuthToken is appended to every request as the token query
	// parameter. Leave empty for anonymous access.
	AuthToken  string `mapstructure:"auth_token"`
	BaseURL    string `mapstructure:"base_url"`
	APIVersion string `mapstructure:"api_version"`

	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	RetryAttempts  int `mapstructure:"retry_attempts"`

	// DisableChunking turns off transparent splitting of ranged
	// queries. Ranges longer than one request window then fail.
	DisableChunking bool `mapstructure:"disable_chunking"`
	// Concurrency bounds parallel sub-requests of a chunked query.
	// Values below 2 keep sub-requests sequential.
	Concurrency int `mapstructure:"concurrency"`

	LogLevel string `mapstructure:"log_level"`

	// CatalogPath points to an optional reference-table override file.
	CatalogPath  string `mapstructure:"catalog_path"`
	WatchCatalog bool   `mapstructure:"watch_catalog"`

	// AssetCachePath enables the on-disk symbol cache when set.
	AssetCachePath       string `mapstructure:"asset_cache_path"`
	AssetCacheTTLSeconds int    `mapstructure:"asset_cache_ttl_seconds"`

	// OnWarning receives advisory messages (empty payloads, pre-epoch
	// ranges). Defaults to the package logger.
	OnWarning func(string) `mapstructure:"-"`

	// defaulted records that applyDefaults ran, so NewClient does not
	// overwrite explicit zero values from a config file.
	defaulted bool
}

// LoadConfig reads a YAML config file, applies defaults for unset
// keys and validates the result.
func LoadConfig(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("config path cannot be empty")
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	setKeys := make(keySet)
	flattenConfigKeys("", v.AllSettings(), setKeys)
	cfg.applyDefaults(setKeys)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() Config {
	var cfg Config
	cfg.applyDefaults(nil)
	return cfg
}

func (c *Config) applyDefaults(keys keySet) {
	c.defaulted = true
	applyFieldDefaults(keys,
		stringFieldDefault("base_url", &c.BaseURL, DefaultBaseURL),
		stringFieldDefault("api_version", &c.APIVersion, DefaultAPIVersion),
		stringFieldDefault("log_level", &c.LogLevel, defaultLogLevel),
		fieldDefault{
			key:   "timeout_seconds",
			need:  func() bool { return c.TimeoutSeconds <= 0 },
			apply: func() { c.TimeoutSeconds = defaultTimeoutSeconds },
		},
		fieldDefault{
			key:   "retry_attempts",
			need:  func() bool { return c.RetryAttempts <= 0 },
			apply: func() { c.RetryAttempts = defaultRetryAttempts },
		},
		fieldDefault{
			key:   "concurrency",
			need:  func() bool { return c.Concurrency <= 0 },
			apply: func() { c.Concurrency = 1 },
		},
		fieldDefault{
			key:   "asset_cache_ttl_seconds",
			need:  func() bool { return c.AssetCacheTTLSeconds <= 0 },
			apply: func() { c.AssetCacheTTLSeconds = defaultAssetCacheTTLSeconds },
		},
	)
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base_url cannot be empty")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must be >= 0")
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry_attempts must be >= 0")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0")
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug/info/warn/error, got %s", c.LogLevel)
	}
	if c.AssetCacheTTLSeconds < 0 {
		return fmt.Errorf("asset_cache_ttl_seconds must be >= 0")
	}
	return nil
}

func (c Config) timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) assetCacheTTL() time.Duration {
	return time.Duration(c.AssetCacheTTLSeconds) * time.Second
}

// keySet tracks which keys the config file set explicitly, so that an
// explicit zero is not overwritten by a default.
type keySet map[string]struct{}

func (k keySet) mark(path string) {
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return
	}
	k[path] = struct{}{}
}

func (k keySet) isSet(path string) bool {
	if len(k) == 0 {
		return false
	}
	_, ok := k[strings.ToLower(strings.TrimSpace(path))]
	return ok
}

type fieldDefault struct {
	key   string
	need  func() bool
	apply func()
}

func applyFieldDefaults(keys keySet, defs ...fieldDefault) {
	for _, def := range defs {
		if def.apply == nil {
			continue
		}
		if def.key != "" && keys.isSet(def.key) {
			continue
		}
		if def.need != nil && !def.need() {
			continue
		}
		def.apply()
	}
}

func stringFieldDefault(key string, target *string, def string) fieldDefault {
	return fieldDefault{
		key:  key,
		need: func() bool { return strings.TrimSpace(*target) == "" },
		apply: func() {
			*target = def
		},
	}
}

func flattenConfigKeys(prefix string, node any, dest keySet) {
	switch val := node.(type) {
	case map[string]any:
		for k, v := range val {
			next := strings.ToLower(strings.TrimSpace(k))
			if next == "" {
				continue
			}
			if prefix != "" {
				next = prefix + "." + next
			}
			flattenConfigKeys(next, v, dest)
		}
	case []any:
		if prefix != "" {
			dest.mark(prefix)
		}
	default:
		if prefix != "" {
			dest.mark(prefix)
		}
	}
}
