package helixir

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"helixir/internal/assetcache"
	"helixir/internal/convert"
	"helixir/internal/logger"
	"helixir/models"
)

// Asset is one entry of the asset listing, the table backing symbol
// resolution.
type Asset struct {
	Chain     int64
	Contract  string
	Symbol    string
	IsDefault bool
}

// AssetsRequest parameterizes Assets.
type AssetsRequest struct {
	// Chain narrows the listing to one network. Accepts any supported
	// chain spelling; sent normalized.
	Chain          any
	SkipValidation bool
}

// Assets returns the listing of assets the API serves.
func (c *Client) Assets(ctx context.Context, req AssetsRequest) ([]*models.Entity, error) {
	query := url.Values{}
	if req.Chain != nil {
		if req.SkipValidation {
			query.Set("chain", convert.ToString(req.Chain))
		} else {
			id, err := c.validateChain(req.Chain)
			if err != nil {
				return nil, err
			}
			query.Set("chain", strconv.FormatInt(id, 10))
		}
	}
	return c.callEntities(ctx, "List[AvailableAsset]", "assets", query)
}

// RefreshAssets discards the cached asset listing and fetches a fresh
// one.
func (c *Client) RefreshAssets(ctx context.Context) error {
	_, err := c.loadAssets(ctx, true)
	return err
}

// assetList returns the asset listing used for symbol resolution,
// fetching it on first use.
func (c *Client) assetList(ctx context.Context) ([]Asset, error) {
	return c.loadAssets(ctx, false)
}

func (c *Client) loadAssets(ctx context.Context, force bool) ([]Asset, error) {
	c.assetsMu.Lock()
	defer c.assetsMu.Unlock()

	if !force && c.assets != nil {
		return c.assets, nil
	}
	if !force && c.cache != nil {
		rows, ok, err := c.cache.Load(ctx, c.cfg.assetCacheTTL())
		if err != nil {
			logger.Warnf("asset cache load failed: %v", err)
		} else if ok {
			c.assets = assetsFromRows(rows)
			return c.assets, nil
		}
	}

	entities, err := c.callEntities(ctx, "List[AvailableAsset]", "assets", nil)
	if err != nil {
		return nil, err
	}
	assets := make([]Asset, 0, len(entities))
	for _, e := range entities {
		assets = append(assets, Asset{
			Chain:     e.Int("chain"),
			Contract:  e.Str("contract"),
			Symbol:    e.Str("symbol"),
			IsDefault: e.Bool("is_default"),
		})
	}
	c.assets = assets

	if c.cache != nil {
		if err := c.cache.Replace(ctx, rowsFromAssets(assets)); err != nil {
			logger.Warnf("asset cache write failed: %v", err)
		}
	}
	return assets, nil
}

// symbolToContract resolves a symbol to its contract address. When
// the symbol is listed more than once, the chain narrows the matches;
// anything still ambiguous is an error naming the candidates.
func (c *Client) symbolToContract(ctx context.Context, symbol string, chainID int64, hasChain bool) (string, error) {
	assets, err := c.assetList(ctx)
	if err != nil {
		return "", err
	}

	var matches []Asset
	for _, a := range assets {
		if a.Symbol == symbol {
			matches = append(matches, a)
		}
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
	}
	if len(matches) == 1 {
		return matches[0].Contract, nil
	}

	if hasChain {
		var narrowed []Asset
		for _, a := range matches {
			if a.Chain == chainID {
				narrowed = append(narrowed, a)
			}
		}
		if len(narrowed) == 1 {
			return narrowed[0].Contract, nil
		}
		if len(narrowed) > 1 {
			contracts := make([]string, len(narrowed))
			for i, a := range narrowed {
				contracts[i] = a.Contract
			}
			return "", fmt.Errorf("%w: %q has multiple contracts on chain %d: %s",
				ErrAmbiguousSymbol, symbol, chainID, strings.Join(contracts, ", "))
		}
	}
	chains := make([]string, 0, len(matches))
	seen := make(map[int64]bool, len(matches))
	for _, a := range matches {
		if !seen[a.Chain] {
			seen[a.Chain] = true
			chains = append(chains, strconv.FormatInt(a.Chain, 10))
		}
	}
	return "", fmt.Errorf("%w: %q is listed on chains %s, specify one",
		ErrAmbiguousSymbol, symbol, strings.Join(chains, ", "))
}

func assetsFromRows(rows []assetcache.Row) []Asset {
	assets := make([]Asset, len(rows))
	for i, r := range rows {
		assets[i] = Asset{Chain: r.Chain, Contract: r.Contract, Symbol: r.Symbol, IsDefault: r.IsDefault}
	}
	return assets
}

func rowsFromAssets(assets []Asset) []assetcache.Row {
	rows := make([]assetcache.Row, len(assets))
	for i, a := range assets {
		rows[i] = assetcache.Row{Chain: a.Chain, Contract: a.Contract, Symbol: a.Symbol, IsDefault: a.IsDefault}
	}
	return rows
}
