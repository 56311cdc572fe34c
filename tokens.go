package helixir

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"helixir/models"
)

// TokensRequest parameterizes the token listing.
type TokensRequest struct {
	Chain any
	Limit int
	Page  int64
	Sort  string
	// Extended switches the listing to the extended token shape.
	Extended       *bool
	SkipValidation bool
}

// TokenRequest parameterizes Token.
type TokenRequest struct {
	TokenQuery
	Extended *bool
}

// CandlesRequest parameterizes Candles.
type CandlesRequest struct {
	TokenQuery
	From       any
	To         any
	Resolution Resolution
	Against    Against
	// Platform restricts prices to comma-separated platforms; unset
	// means the chain's biggest platform.
	Platform string
}

// PriceRequest parameterizes Price.
type PriceRequest struct {
	TokenQuery
	Against Against
}

// PriceChangeRequest parameterizes PriceChange.
type PriceChangeRequest struct {
	TokenQuery
	Against Against
	// Interval is the change interval, D1 when unset.
	Interval Resolution
}

// SwapsRequest parameterizes Swaps. FromWallet and LPToken filter the
// swaps by originating wallet and by pool.
type SwapsRequest struct {
	TokenQuery
	FromWallet string
	LPToken    string
	From       any
	To         any
	Limit      int
	Page       int64
	Sort       string
}

// IntervalRequest parameterizes the volume change endpoints.
type IntervalRequest struct {
	TokenQuery
	// Interval is the aggregation interval, D1 when unset.
	Interval Resolution
}

// Tokens returns the token listing ranked by market cap or liquidity,
// paginated.
func (c *Client) Tokens(ctx context.Context, req TokensRequest) ([]*models.Entity, error) {
	chain := effectiveChain(req.Chain)
	if !req.SkipValidation {
		if _, err := c.validateChain(chain); err != nil {
			return nil, err
		}
		if err := c.validateLimit(req.Limit); err != nil {
			return nil, err
		}
		if err := c.validatePage(req.Page); err != nil {
			return nil, err
		}
		if err := c.validateSort(req.Sort, c.tables().ListingSortColumns); err != nil {
			return nil, err
		}
	}
	query := url.Values{}
	if req.Extended != nil {
		query.Set("extended", strconv.FormatBool(*req.Extended))
	}
	setPagination(query, req.Limit, req.Page, req.Sort)
	endpoint := fmt.Sprintf("%s/tokens", chainSegment(chain))
	return c.callEntities(ctx, "List[TokenResponseExtended]", endpoint, query)
}

// TokensNumber returns the count of known tokens.
func (c *Client) TokensNumber(ctx context.Context, req ChainRequest) (int64, error) {
	chain := effectiveChain(req.Chain)
	if !req.SkipValidation {
		if _, err := c.validateChain(chain); err != nil {
			return 0, err
		}
	}
	endpoint := fmt.Sprintf("%s/tokens/number", chainSegment(chain))
	return c.callInt(ctx, endpoint, nil)
}

// Token returns basic information about one token.
func (c *Client) Token(ctx context.Context, req TokenRequest) (*models.Entity, error) {
	chain := effectiveChain(req.Chain)
	contract := req.Contract
	if !req.SkipValidation {
		var err error
		if contract, err = c.resolveToken(ctx, req.Symbol, req.Contract, chain); err != nil {
			return nil, err
		}
	}
	query := url.Values{}
	if req.Extended != nil {
		query.Set("extended", strconv.FormatBool(*req.Extended))
	}
	endpoint := fmt.Sprintf("%s/tokens/%s", chainSegment(chain), contract)
	return c.callEntity(ctx, "TokenResponse", endpoint, query)
}

// ActiveAddresses returns the series of active address counts for one
// token.
func (c *Client) ActiveAddresses(ctx context.Context, req SeriesRequest) ([]*models.Entity, error) {
	res := req.Resolution
	if res == "" {
		res = H1
	}
	chain := effectiveChain(req.Chain)
	contract := req.Contract
	var fromTS, toTS int64
	var fromSet, toSet bool
	if req.SkipValidation {
		fromTS, fromSet, toTS, toSet = rawBounds(req.From, req.To)
	} else {
		var err error
		if fromTS, fromSet, toTS, toSet, err = c.validateFromTo(req.From, req.To); err != nil {
			return nil, err
		}
		if contract, err = c.resolveToken(ctx, req.Symbol, req.Contract, chain); err != nil {
			return nil, err
		}
		if res, err = validateResolution(res); err != nil {
			return nil, err
		}
	}
	endpoint := fmt.Sprintf("%s/tokens/%s/active_addresses", chainSegment(chain), contract)
	return c.fetchRange(ctx, "List[ActiveAddressesResponse]", endpoint, nil, res, fromTS, fromSet, toTS, toSet)
}

// Candles returns the price series of one token.
func (c *Client) Candles(ctx context.Context, req CandlesRequest) ([]*models.Entity, error) {
	res := req.Resolution
	if res == "" {
		res = H1
	}
	chain := effectiveChain(req.Chain)
	contract := req.Contract
	var fromTS, toTS int64
	var fromSet, toSet bool
	if req.SkipValidation {
		fromTS, fromSet, toTS, toSet = rawBounds(req.From, req.To)
	} else {
		var err error
		if _, err = c.validateChain(chain); err != nil {
			return nil, err
		}
		if contract, err = c.resolveToken(ctx, req.Symbol, req.Contract, chain); err != nil {
			return nil, err
		}
		if err = validateAgainst(req.Against); err != nil {
			return nil, err
		}
		if fromTS, fromSet, toTS, toSet, err = c.validateFromTo(req.From, req.To); err != nil {
			return nil, err
		}
		if res, err = validateResolution(res); err != nil {
			return nil, err
		}
	}
	query := url.Values{}
	if req.Against != "" {
		query.Set("against", string(req.Against))
	}
	if req.Platform != "" {
		query.Set("platform", req.Platform)
	}
	endpoint := fmt.Sprintf("%s/tokens/%s/candles", chainSegment(chain), contract)
	return c.fetchRange(ctx, "List[TokenPriceResponse]", endpoint, query, res, fromTS, fromSet, toTS, toSet)
}

// Holders returns the holder count of one token.
func (c *Client) Holders(ctx context.Context, req TokenQuery) (int64, error) {
	chain := effectiveChain(req.Chain)
	contract := req.Contract
	if !req.SkipValidation {
		var err error
		if contract, err = c.resolveToken(ctx, req.Symbol, req.Contract, chain); err != nil {
			return 0, err
		}
	}
	endpoint := fmt.Sprintf("%s/tokens/%s/holders", chainSegment(chain), contract)
	return c.callInt(ctx, endpoint, nil)
}

// MarketCap returns the recent market capitalization of one token.
func (c *Client) MarketCap(ctx context.Context, req TokenQuery) (float64, error) {
	chain := effectiveChain(req.Chain)
	contract := req.Contract
	if !req.SkipValidation {
		var err error
		if contract, err = c.resolveToken(ctx, req.Symbol, req.Contract, chain); err != nil {
			return 0, err
		}
	}
	endpoint := fmt.Sprintf("%s/tokens/%s/market_cap", chainSegment(chain), contract)
	return c.callFloat(ctx, endpoint, nil)
}

// Pairs returns the pairs of one token, keyed by pair name.
func (c *Client) Pairs(ctx context.Context, req TokenQuery) (map[string]*models.Entity, error) {
	chain := effectiveChain(req.Chain)
	contract := req.Contract
	if !req.SkipValidation {
		var err error
		if contract, err = c.resolveToken(ctx, req.Symbol, req.Contract, chain); err != nil {
			return nil, err
		}
	}
	endpoint := fmt.Sprintf("%s/tokens/%s/pairs", chainSegment(chain), contract)
	return c.callEntityMap(ctx, "Dict[str, LPTokenResponse]", endpoint, nil)
}

// Price returns the most recent price of one token.
func (c *Client) Price(ctx context.Context, req PriceRequest) (float64, error) {
	chain := effectiveChain(req.Chain)
	contract := req.Contract
	if !req.SkipValidation {
		var err error
		if contract, err = c.resolveToken(ctx, req.Symbol, req.Contract, chain); err != nil {
			return 0, err
		}
		if err = validateAgainst(req.Against); err != nil {
			return 0, err
		}
	}
	query := url.Values{}
	if req.Against != "" {
		query.Set("against", string(req.Against))
	}
	endpoint := fmt.Sprintf("%s/tokens/%s/price", chainSegment(chain), contract)
	return c.callFloat(ctx, endpoint, query)
}

// PriceChange returns the percent price change of one token over the
// interval.
func (c *Client) PriceChange(ctx context.Context, req PriceChangeRequest) (float64, error) {
	res := req.Interval
	if res == "" {
		res = D1
	}
	chain := effectiveChain(req.Chain)
	contract := req.Contract
	if !req.SkipValidation {
		var err error
		if contract, err = c.resolveToken(ctx, req.Symbol, req.Contract, chain); err != nil {
			return 0, err
		}
		if err = validateAgainst(req.Against); err != nil {
			return 0, err
		}
		if res, err = validateResolution(res); err != nil {
			return 0, err
		}
	}
	query := url.Values{}
	if req.Against != "" {
		query.Set("against", string(req.Against))
	}
	query.Set("interval", string(res))
	endpoint := fmt.Sprintf("%s/tokens/%s/price/change", chainSegment(chain), contract)
	return c.callFloat(ctx, endpoint, query)
}

// Swaps returns the most recent swaps of one token, paginated.
func (c *Client) Swaps(ctx context.Context, req SwapsRequest) ([]*models.Entity, error) {
	chain := effectiveChain(req.Chain)
	contract := req.Contract
	query := url.Values{}
	if req.SkipValidation {
		setRaw(query, "from", req.From)
		setRaw(query, "to", req.To)
	} else {
		fromTS, fromSet, toTS, toSet, err := c.validateFromTo(req.From, req.To)
		if err != nil {
			return nil, err
		}
		if contract, err = c.resolveToken(ctx, req.Symbol, req.Contract, chain); err != nil {
			return nil, err
		}
		if err := c.validatePage(req.Page); err != nil {
			return nil, err
		}
		if err := c.validateSort(req.Sort, c.tables().SwapSortColumns); err != nil {
			return nil, err
		}
		if err := c.validateLimit(req.Limit); err != nil {
			return nil, err
		}
		setUnix(query, "from", fromTS, fromSet)
		setUnix(query, "to", toTS, toSet)
	}
	if req.FromWallet != "" {
		query.Set("from_wallet", req.FromWallet)
	}
	if req.LPToken != "" {
		query.Set("lp_token", req.LPToken)
	}
	setPagination(query, req.Limit, req.Page, req.Sort)
	endpoint := fmt.Sprintf("%s/tokens/%s/swaps", chainSegment(chain), contract)
	return c.callEntities(ctx, "List[LPMoveResponse]", endpoint, query)
}

// SwapsNumber returns the series of swap counts for one token.
func (c *Client) SwapsNumber(ctx context.Context, req SeriesRequest) ([]*models.Entity, error) {
	res := req.Resolution
	if res == "" {
		res = H1
	}
	chain := effectiveChain(req.Chain)
	contract := req.Contract
	var fromTS, toTS int64
	var fromSet, toSet bool
	if req.SkipValidation {
		fromTS, fromSet, toTS, toSet = rawBounds(req.From, req.To)
	} else {
		var err error
		if fromTS, fromSet, toTS, toSet, err = c.validateFromTo(req.From, req.To); err != nil {
			return nil, err
		}
		if contract, err = c.resolveToken(ctx, req.Symbol, req.Contract, chain); err != nil {
			return nil, err
		}
		if res, err = validateResolution(res); err != nil {
			return nil, err
		}
	}
	endpoint := fmt.Sprintf("%s/tokens/%s/swaps/number", chainSegment(chain), contract)
	return c.fetchRange(ctx, "List[ActiveAddressesResponse]", endpoint, nil, res, fromTS, fromSet, toTS, toSet)
}

// Volumes returns the traded volume series of one token.
func (c *Client) Volumes(ctx context.Context, req SeriesRequest) ([]*models.Entity, error) {
	res := req.Resolution
	if res == "" {
		res = H1
	}
	chain := effectiveChain(req.Chain)
	contract := req.Contract
	var fromTS, toTS int64
	var fromSet, toSet bool
	if req.SkipValidation {
		fromTS, fromSet, toTS, toSet = rawBounds(req.From, req.To)
	} else {
		var err error
		if fromTS, fromSet, toTS, toSet, err = c.validateFromTo(req.From, req.To); err != nil {
			return nil, err
		}
		if contract, err = c.resolveToken(ctx, req.Symbol, req.Contract, chain); err != nil {
			return nil, err
		}
		if res, err = validateResolution(res); err != nil {
			return nil, err
		}
	}
	endpoint := fmt.Sprintf("%s/tokens/%s/volumes", chainSegment(chain), contract)
	return c.fetchRange(ctx, "List[TradedVolumeResponse]", endpoint, nil, res, fromTS, fromSet, toTS, toSet)
}

// VolumesChange returns the 24h change in traded volume of one token
// over the interval.
func (c *Client) VolumesChange(ctx context.Context, req IntervalRequest) (float64, error) {
	return c.volumeStat(ctx, req, "change")
}

// VolumesLatest returns the traded volume of one token in the latest
// interval.
func (c *Client) VolumesLatest(ctx context.Context, req IntervalRequest) (float64, error) {
	return c.volumeStat(ctx, req, "latest")
}

func (c *Client) volumeStat(ctx context.Context, req IntervalRequest, stat string) (float64, error) {
	res := req.Interval
	if res == "" {
		res = D1
	}
	chain := effectiveChain(req.Chain)
	contract := req.Contract
	if !req.SkipValidation {
		var err error
		if contract, err = c.resolveToken(ctx, req.Symbol, req.Contract, chain); err != nil {
			return 0, err
		}
		if res, err = validateResolution(res); err != nil {
			return 0, err
		}
	}
	query := url.Values{}
	query.Set("interval", string(res))
	endpoint := fmt.Sprintf("%s/tokens/%s/volumes/%s", chainSegment(chain), contract, stat)
	return c.callFloat(ctx, endpoint, query)
}
