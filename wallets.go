package helixir

import (
	"context"
	"fmt"
	"net/url"

	"helixir/models"
)

// WalletRequest parameterizes the wallet portfolio endpoints.
type WalletRequest struct {
	Address        string
	Chain          any
	SkipValidation bool
}

// WalletRangeRequest parameterizes the historic portfolio endpoints.
// The queried wallet has to be whitelisted.
type WalletRangeRequest struct {
	Address        string
	Chain          any
	From           any
	To             any
	SkipValidation bool
}

// WalletMovesRequest parameterizes WalletMoves. TokenContract narrows
// the series to moves of one token.
type WalletMovesRequest struct {
	Address        string
	Chain          any
	TokenContract  string
	From           any
	To             any
	Resolution     Resolution
	SkipValidation bool
}

// WalletSwapsRequest parameterizes WalletSwaps.
type WalletSwapsRequest struct {
	Address        string
	Chain          any
	TokenContract  string
	LPToken        string
	From           any
	To             any
	Limit          int
	Page           int64
	Sort           string
	SkipValidation bool
}

// WalletTransactionsRequest parameterizes WalletTransactions.
type WalletTransactionsRequest struct {
	Address        string
	Chain          any
	From           any
	To             any
	Limit          int
	Page           int64
	SkipValidation bool
}

// WalletsNumber returns the count of unique known addresses.
func (c *Client) WalletsNumber(ctx context.Context, req ChainRequest) (int64, error) {
	chain := effectiveChain(req.Chain)
	if !req.SkipValidation {
		if _, err := c.validateChain(chain); err != nil {
			return 0, err
		}
	}
	endpoint := fmt.Sprintf("%s/wallets/number", chainSegment(chain))
	return c.callInt(ctx, endpoint, nil)
}

// WalletFarmPortfolio returns the balances one wallet holds across
// supported farms.
func (c *Client) WalletFarmPortfolio(ctx context.Context, req WalletRequest) (*models.Entity, error) {
	chain := effectiveChain(req.Chain)
	if !req.SkipValidation {
		if _, err := c.validateChain(chain); err != nil {
			return nil, err
		}
	}
	endpoint := fmt.Sprintf("%s/wallets/%s/farm_portfolio", chainSegment(chain), req.Address)
	return c.callEntity(ctx, "FarmsPortfolioResponse", endpoint, nil)
}

// WalletHistoricFarmPortfolio returns the historic farm balances of
// one wallet.
func (c *Client) WalletHistoricFarmPortfolio(ctx context.Context, req WalletRangeRequest) ([]*models.Entity, error) {
	return c.walletHistory(ctx, req, "historic_farm_portfolio")
}

// WalletHistoricPortfolio returns the historic token balances of one
// wallet.
func (c *Client) WalletHistoricPortfolio(ctx context.Context, req WalletRangeRequest) ([]*models.Entity, error) {
	return c.walletHistory(ctx, req, "historic_portfolio")
}

func (c *Client) walletHistory(ctx context.Context, req WalletRangeRequest, suffix string) ([]*models.Entity, error) {
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
	endpoint := fmt.Sprintf("%s/wallets/%s/%s", chainSegment(chain), req.Address, suffix)
	return c.callEntities(ctx, "List[PortfolioResponse]", endpoint, query)
}

// WalletMoves returns the series of balance moves of one wallet.
func (c *Client) WalletMoves(ctx context.Context, req WalletMovesRequest) ([]*models.Entity, error) {
	res := req.Resolution
	if res == "" {
		res = H1
	}
	chain := effectiveChain(req.Chain)
	var fromTS, toTS int64
	var fromSet, toSet bool
	if req.SkipValidation {
		fromTS, fromSet, toTS, toSet = rawBounds(req.From, req.To)
	} else {
		var err error
		if fromTS, fromSet, toTS, toSet, err = c.validateFromTo(req.From, req.To); err != nil {
			return nil, err
		}
		if _, err := c.validateChain(chain); err != nil {
			return nil, err
		}
		if res, err = validateResolution(res); err != nil {
			return nil, err
		}
	}
	query := url.Values{}
	if req.TokenContract != "" {
		query.Set("token_contract", req.TokenContract)
	}
	endpoint := fmt.Sprintf("%s/wallets/%s/moves", chainSegment(chain), req.Address)
	return c.fetchRange(ctx, "List[WalletMoveResponse]", endpoint, query, res, fromTS, fromSet, toTS, toSet)
}

// WalletPortfolio returns the balances of all tokens one wallet
// holds.
func (c *Client) WalletPortfolio(ctx context.Context, req WalletRequest) ([]*models.Entity, error) {
	chain := effectiveChain(req.Chain)
	if !req.SkipValidation {
		if _, err := c.validateChain(chain); err != nil {
			return nil, err
		}
	}
	endpoint := fmt.Sprintf("%s/wallets/%s/portfolio", chainSegment(chain), req.Address)
	return c.callEntities(ctx, "List[TokenPortfolioResponse]", endpoint, nil)
}

// WalletSwaps returns the most recent swaps of one wallet, paginated.
func (c *Client) WalletSwaps(ctx context.Context, req WalletSwapsRequest) ([]*models.Entity, error) {
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
		if err := c.validateSort(req.Sort, c.tables().SwapSortColumns); err != nil {
			return nil, err
		}
		if err := c.validatePage(req.Page); err != nil {
			return nil, err
		}
		if _, err := c.validateChain(chain); err != nil {
			return nil, err
		}
		if err := c.validateLimit(req.Limit); err != nil {
			return nil, err
		}
		setUnix(query, "from", fromTS, fromSet)
		setUnix(query, "to", toTS, toSet)
	}
	if req.TokenContract != "" {
		query.Set("token_contract", req.TokenContract)
	}
	if req.LPToken != "" {
		query.Set("lp_token", req.LPToken)
	}
	setPagination(query, req.Limit, req.Page, req.Sort)
	endpoint := fmt.Sprintf("%s/wallets/%s/swaps", chainSegment(chain), req.Address)
	return c.callEntities(ctx, "List[LPMoveResponse]", endpoint, query)
}

// WalletTransactions returns the transactions of one wallet,
// paginated.
func (c *Client) WalletTransactions(ctx context.Context, req WalletTransactionsRequest) ([]*models.Entity, error) {
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
		if err := c.validatePage(req.Page); err != nil {
			return nil, err
		}
		if _, err := c.validateChain(chain); err != nil {
			return nil, err
		}
		if err := c.validateLimit(req.Limit); err != nil {
			return nil, err
		}
		setUnix(query, "from", fromTS, fromSet)
		setUnix(query, "to", toTS, toSet)
	}
	setPagination(query, req.Limit, req.Page, "")
	endpoint := fmt.Sprintf("%s/wallets/%s/txs", chainSegment(chain), req.Address)
	return c.callEntities(ctx, "List[TransactionResponse]", endpoint, query)
}
