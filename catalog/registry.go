package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"helixir/internal/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Snapshot is one loaded table set. Version increments on every
// reload.
type Snapshot struct {
	Version  int64
	LoadedAt time.Time
	Tables   Tables
}

// ChangeListener runs after the registry reloads its override file.
type ChangeListener func(Snapshot)

// Registry serves catalog tables and keeps them current when an
// override file changes on disk.
type Registry struct {
	path string
	v    *viper.Viper

	mu        sync.RWMutex
	snapshot  Snapshot
	listeners []ChangeListener
}

// NewRegistry returns a registry backed by the built-in tables only.
func NewRegistry() *Registry {
	return &Registry{snapshot: Snapshot{Version: 1, LoadedAt: time.Now(), Tables: Builtin()}}
}

// NewRegistryFromFile loads an override file on top of the built-in
// tables. With watch set, the file is reloaded whenever it changes and
// subscribed listeners are notified.
func NewRegistryFromFile(path string, watch bool) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("catalog registry requires path")
	}
	r := &Registry{path: path}
	if err := r.reload(); err != nil {
		return nil, err
	}
	if watch {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read catalog file failed: %w", err)
		}
		v.OnConfigChange(func(evt fsnotify.Event) {
			if err := r.reload(); err != nil {
				logger.Errorf("catalog reload failed: %v", err)
				return
			}
			r.notifyListeners()
		})
		v.WatchConfig()
		r.v = v
	}
	return r, nil
}

// Snapshot returns the current table set.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := r.snapshot
	snap.Tables = cloneTables(snap.Tables)
	return snap
}

// Tables is shorthand for Snapshot().Tables.
func (r *Registry) Tables() Tables {
	return r.Snapshot().Tables
}

// Subscribe registers a listener for reload events.
func (r *Registry) Subscribe(fn ChangeListener) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

func (r *Registry) reload() error {
	cfg, err := readOverrideFile(r.path)
	if err != nil {
		return err
	}
	tables := mergeOverride(Builtin(), cfg)
	r.mu.Lock()
	r.snapshot = Snapshot{
		Version:  r.snapshot.Version + 1,
		LoadedAt: time.Now(),
		Tables:   tables,
	}
	r.mu.Unlock()
	logger.Infof("Catalog loaded %d chains, %d resolutions from %s",
		len(tables.Chains), len(tables.Resolutions), filepath.Base(r.path))
	return nil
}

func (r *Registry) notifyListeners() {
	r.mu.RLock()
	snap := r.snapshot
	snap.Tables = cloneTables(snap.Tables)
	listeners := append([]ChangeListener(nil), r.listeners...)
	r.mu.RUnlock()
	for _, fn := range listeners {
		go func(cb ChangeListener) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Errorf("catalog listener panic: %v", rec)
				}
			}()
			cb(snap)
		}(fn)
	}
}

type overrideFile struct {
	DataEpoch   *int64 `yaml:"data_epoch"`
	CandleLimit *int64 `yaml:"candle_limit"`

	Chains      []Chain                       `yaml:"chains"`
	Resolutions map[string]resolutionOverride `yaml:"resolutions"`

	SortColumns        []string `yaml:"sort_columns"`
	ListingSortColumns []string `yaml:"listing_sort_columns"`
	SwapSortColumns    []string `yaml:"swap_sort_columns"`

	Limit *Bounds `yaml:"limit"`
	Page  *Bounds `yaml:"page"`
}

type resolutionOverride struct {
	Seconds      *int64 `yaml:"seconds"`
	Window       *int64 `yaml:"window"`
	StrictWindow *int64 `yaml:"strict_window"`
}

func readOverrideFile(path string) (overrideFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return overrideFile{}, fmt.Errorf("read catalog file failed: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return overrideFile{}, fmt.Errorf("parse catalog file failed: %w", err)
	}
	if err := validateOverride(doc); err != nil {
		return overrideFile{}, fmt.Errorf("catalog file invalid: %w", err)
	}

	var cfg overrideFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return overrideFile{}, fmt.Errorf("parse catalog file failed: %w", err)
	}
	return cfg, nil
}

// validateOverride runs the JSON schema over the YAML document. The
// document is round-tripped through encoding/json so the validator
// sees the value shapes it expects.
func validateOverride(doc any) error {
	if doc == nil {
		return nil
	}
	buf, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var jsonDoc any
	if err := json.Unmarshal(buf, &jsonDoc); err != nil {
		return err
	}
	return compiledSchema.Validate(jsonDoc)
}

func mergeOverride(base Tables, cfg overrideFile) Tables {
	out := cloneTables(base)
	if cfg.DataEpoch != nil {
		out.DataEpoch = *cfg.DataEpoch
	}
	if cfg.CandleLimit != nil {
		out.CandleLimit = *cfg.CandleLimit
	}
	if len(cfg.Chains) > 0 {
		out.Chains = make([]Chain, 0, len(cfg.Chains))
		for _, ch := range cfg.Chains {
			ch.Name = strings.ToLower(strings.TrimSpace(ch.Name))
			out.Chains = append(out.Chains, ch)
		}
	}
	for code, res := range cfg.Resolutions {
		code = strings.ToUpper(strings.TrimSpace(code))
		cur := out.Resolutions[code]
		if res.Seconds != nil {
			cur.Seconds = *res.Seconds
		}
		if res.Window != nil {
			cur.Window = *res.Window
		}
		if res.StrictWindow != nil {
			cur.StrictWindow = *res.StrictWindow
		}
		out.Resolutions[code] = cur
	}
	if len(cfg.SortColumns) > 0 {
		out.SortColumns = append([]string(nil), cfg.SortColumns...)
	}
	if len(cfg.ListingSortColumns) > 0 {
		out.ListingSortColumns = append([]string(nil), cfg.ListingSortColumns...)
	}
	if len(cfg.SwapSortColumns) > 0 {
		out.SwapSortColumns = append([]string(nil), cfg.SwapSortColumns...)
	}
	if cfg.Limit != nil {
		out.Limit = *cfg.Limit
	}
	if cfg.Page != nil {
		out.Page = *cfg.Page
	}
	return out
}
