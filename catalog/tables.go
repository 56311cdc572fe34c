// Package catalog holds the API reference tables: supported chains,
// resolution windows, sort columns and paging bounds. The built-in
// tables match what the hosted API serves; deployments can override
// them from a YAML file through the Registry.
package catalog

import (
	"math"
	"strconv"
	"strings"
)

// DataEpoch is the unix time of the first indexed data point. Ranged
// queries are clamped to it.
const DataEpoch int64 = 1618227900

// CandleLimit is the maximum number of candles the API returns per
// request.
const CandleLimit int64 = 5000

// Chain is one supported network: its numeric chain ID plus the short
// name accepted as an alias.
type Chain struct {
	ID   int64  `yaml:"id" mapstructure:"id"`
	Name string `yaml:"name" mapstructure:"name"`
}

// Resolution describes one candle resolution: seconds per candle and
// the largest time span a single request may cover. Strict endpoints
// (per-address aggregations) carry tighter windows.
type Resolution struct {
	Seconds      int64
	Window       int64
	StrictWindow int64
}

// Bounds is an inclusive integer range.
type Bounds struct {
	Min int64 `yaml:"min" mapstructure:"min"`
	Max int64 `yaml:"max" mapstructure:"max"`
}

// Tables is one immutable set of reference tables. Obtain it from a
// Registry snapshot and treat it as read-only.
type Tables struct {
	DataEpoch   int64
	CandleLimit int64

	Chains      []Chain
	Resolutions map[string]Resolution

	SortColumns        []string
	ListingSortColumns []string
	SwapSortColumns    []string

	Limit Bounds
	Page  Bounds
}

// Builtin returns the tables served by the hosted API.
func Builtin() Tables {
	return Tables{
		DataEpoch:   DataEpoch,
		CandleLimit: CandleLimit,
		Chains: []Chain{
			{ID: 56, Name: "bsc"},
			{ID: 1, Name: "eth"},
			{ID: 137, Name: "polygon"},
			{ID: 43114, Name: "avax"},
			{ID: 250, Name: "ftm"},
		},
		Resolutions: map[string]Resolution{
			"M1":  {Seconds: 60, Window: 604800, StrictWindow: 86400},
			"M5":  {Seconds: 300, Window: 604800, StrictWindow: 86400},
			"M10": {Seconds: 600, Window: 604800, StrictWindow: 86400},
			"M15": {Seconds: 900, Window: 864000, StrictWindow: 172800},
			"M30": {Seconds: 1800, Window: 864000, StrictWindow: 172800},
			"H1":  {Seconds: 3600, Window: 1209600, StrictWindow: 172800},
			"H4":  {Seconds: 14400, Window: 1728000, StrictWindow: 604800},
			"H12": {Seconds: 43200, Window: 1728000, StrictWindow: 604800},
			"D1":  {Seconds: 86400, Window: 2592000, StrictWindow: 2592000},
		},
		SortColumns: []string{
			"market_cap", "liquidity_usd", "name", "symbol", "total_supply",
			"circulating_supply", "price_stable", "price_peg", "time", "created_at",
		},
		ListingSortColumns: []string{
			"chain", "circulating_supply", "contract", "decimals", "liquidity_usd",
			"market_cap", "name", "price_change_24_h", "price_change_7_d",
			"price_peg", "price_usd", "symbol", "total_supply", "volume_24_h",
		},
		SwapSortColumns: []string{
			"amount_0", "amount_1", "time", "token_contract", "token_symbol",
		},
		Limit: Bounds{Min: 1, Max: 500},
		Page:  Bounds{Min: 1, Max: 922337203685477581},
	}
}

// NormalizeChain maps any accepted chain spelling to its numeric ID.
// Accepted spellings are the numeric ID, the numeric ID as a string,
// and the short name in all-upper or all-lower case.
func (t Tables) NormalizeChain(chain any) (int64, bool) {
	switch c := chain.(type) {
	case int:
		return t.chainByID(int64(c))
	case int32:
		return t.chainByID(int64(c))
	case int64:
		return t.chainByID(c)
	case float64:
		if c != math.Trunc(c) {
			return 0, false
		}
		return t.chainByID(int64(c))
	case string:
		s := strings.TrimSpace(c)
		for _, ch := range t.Chains {
			if s == ch.Name || s == strings.ToUpper(ch.Name) {
				return ch.ID, true
			}
		}
		if id, err := strconv.ParseInt(s, 10, 64); err == nil && s == strconv.FormatInt(id, 10) {
			return t.chainByID(id)
		}
		return 0, false
	default:
		return 0, false
	}
}

func (t Tables) chainByID(id int64) (int64, bool) {
	for _, ch := range t.Chains {
		if ch.ID == id {
			return id, true
		}
	}
	return 0, false
}

// ChainNames returns the lowercase short names in declaration order.
func (t Tables) ChainNames() []string {
	names := make([]string, len(t.Chains))
	for i, ch := range t.Chains {
		names[i] = ch.Name
	}
	return names
}

// Step returns the largest span one sub-request may cover at the given
// resolution: the endpoint window capped by the candle budget. The
// second return is false for resolutions without ranged support.
func (t Tables) Step(resolution string, strict bool) (int64, bool) {
	r, ok := t.Resolutions[resolution]
	if !ok {
		return 0, false
	}
	window := r.Window
	if strict {
		window = r.StrictWindow
	}
	if budget := r.Seconds * t.CandleLimit; budget < window {
		window = budget
	}
	return window, true
}

func cloneTables(src Tables) Tables {
	dst := src
	dst.Chains = append([]Chain(nil), src.Chains...)
	dst.Resolutions = make(map[string]Resolution, len(src.Resolutions))
	for k, v := range src.Resolutions {
		dst.Resolutions[k] = v
	}
	dst.SortColumns = append([]string(nil), src.SortColumns...)
	dst.ListingSortColumns = append([]string(nil), src.ListingSortColumns...)
	dst.SwapSortColumns = append([]string(nil), src.SwapSortColumns...)
	return dst
}
