package helixir

import (
	"context"
	"fmt"
	"net/url"

	"helixir/models"
)

// LPsRequest parameterizes the LP token listing.
type LPsRequest struct {
	Chain any
	Limit int
	Page  int64
	// Sort orders the listing, "+column"/"-column" or
	// "column.asc"/"column.desc".
	Sort           string
	SkipValidation bool
}

// LPSwapsRequest parameterizes LPSwaps. FromWallet and TokenContract
// filter the swaps by originating wallet and by traded token.
type LPSwapsRequest struct {
	TokenQuery
	FromWallet    string
	TokenContract string
	From          any
	To            any
	Limit         int
	Page          int64
	Sort          string
}

// MarketDepthRequest parameterizes MarketDepth. PoolContract is sent
// as given, V3 pools have no symbol listing to resolve against.
type MarketDepthRequest struct {
	PoolContract   string
	Chain          any
	From           any
	To             any
	SkipValidation bool
}

// LPs returns the LP token listing, paginated.
func (c *Client) LPs(ctx context.Context, req LPsRequest) ([]*models.Entity, error) {
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
	setPagination(query, req.Limit, req.Page, req.Sort)
	endpoint := fmt.Sprintf("%s/lps", chainSegment(chain))
	return c.callEntities(ctx, "List[TokenResponseExtended]", endpoint, query)
}

// LPsNumber returns the count of known LP tokens.
func (c *Client) LPsNumber(ctx context.Context, req ChainRequest) (int64, error) {
	chain := effectiveChain(req.Chain)
	if !req.SkipValidation {
		if _, err := c.validateChain(chain); err != nil {
			return 0, err
		}
	}
	endpoint := fmt.Sprintf("%s/lps/number", chainSegment(chain))
	return c.callInt(ctx, endpoint, nil)
}

// LPToken returns basic information about one LP token.
func (c *Client) LPToken(ctx context.Context, req TokenQuery) (*models.Entity, error) {
	chain := effectiveChain(req.Chain)
	contract := req.Contract
	if !req.SkipValidation {
		var err error
		if contract, err = c.resolveToken(ctx, req.Symbol, req.Contract, chain); err != nil {
			return nil, err
		}
	}
	endpoint := fmt.Sprintf("%s/lps/%s", chainSegment(chain), contract)
	return c.callEntity(ctx, "LPTokenResponse", endpoint, nil)
}

// LPLiquidity returns the liquidity series of one LP token.
func (c *Client) LPLiquidity(ctx context.Context, req SeriesRequest) ([]*models.Entity, error) {
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
	endpoint := fmt.Sprintf("%s/lps/%s/liquidity", chainSegment(chain), contract)
	return c.fetchRange(ctx, "List[LPLiquidityResponse]", endpoint, nil, res, fromTS, fromSet, toTS, toSet)
}

// LPPrice returns the most recent price of one LP token.
func (c *Client) LPPrice(ctx context.Context, req TokenQuery) (float64, error) {
	chain := effectiveChain(req.Chain)
	contract := req.Contract
	if !req.SkipValidation {
		var err error
		if contract, err = c.resolveToken(ctx, req.Symbol, req.Contract, chain); err != nil {
			return 0, err
		}
	}
	endpoint := fmt.Sprintf("%s/lps/%s/price", chainSegment(chain), contract)
	return c.callFloat(ctx, endpoint, nil)
}

// LPSwaps returns the most recent swaps on one LP token, paginated.
func (c *Client) LPSwaps(ctx context.Context, req LPSwapsRequest) ([]*models.Entity, error) {
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
	if req.TokenContract != "" {
		query.Set("token_contract", req.TokenContract)
	}
	setPagination(query, req.Limit, req.Page, req.Sort)
	endpoint := fmt.Sprintf("%s/lps/%s/swaps", chainSegment(chain), contract)
	return c.callEntities(ctx, "List[LPMoveResponse]", endpoint, query)
}

// MarketDepth returns the market depth series of one V3 LP pool.
func (c *Client) MarketDepth(ctx context.Context, req MarketDepthRequest) ([]*models.Entity, error) {
	chain := effectiveChain(req.Chain)
	query := url.Values{}
	if req.SkipValidation {
		setRaw(query, "from", req.From)
		setRaw(query, "to", req.To)
	} else {
		fromTS, fromSet, toTS, toSet, err := c.validateFromTo(req.From, req.To)
		if err != nil {
			return nil, err
		}
		if _, err := c.validateChain(chain); err != nil {
			return nil, err
		}
		setUnix(query, "from", fromTS, fromSet)
		setUnix(query, "to", toTS, toSet)
	}
	endpoint := fmt.Sprintf("%s/lps/%s/market_depth", chainSegment(chain), req.PoolContract)
	return c.callEntities(ctx, "List[MarketDepth]", endpoint, query)
}
