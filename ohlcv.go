package helixir

import (
	"context"
	"fmt"

	"helixir/series"
)

// OHLCV returns the price series of one token as an OHLCV frame with
// traded volumes merged in. Prices are quoted against USD unless the
// request says otherwise.
func (c *Client) OHLCV(ctx context.Context, req CandlesRequest) (series.Bars, error) {
	inner, err := c.resolveFrameRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	candles, err := c.Candles(ctx, inner)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: price candles", ErrEmptySeries)
	}

	volumes, err := c.Volumes(ctx, seriesRequestOf(inner))
	if err != nil {
		return nil, err
	}
	if len(volumes) == 0 {
		return nil, fmt.Errorf("%w: traded volumes", ErrEmptySeries)
	}

	bars := series.FromCandles(candles)
	bars.MergeVolumes(volumes)
	return bars, nil
}

// OHLCVAS returns the OHLCV frame of one token extended with active
// address and swap counts per bar. Bars without activity data carry
// zero counts.
func (c *Client) OHLCVAS(ctx context.Context, req CandlesRequest) (series.Bars, error) {
	inner, err := c.resolveFrameRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	bars, err := c.OHLCV(ctx, inner)
	if err != nil {
		return nil, err
	}

	addresses, err := c.ActiveAddresses(ctx, seriesRequestOf(inner))
	if err != nil {
		return nil, err
	}
	if len(addresses) == 0 {
		return nil, fmt.Errorf("%w: active addresses", ErrEmptySeries)
	}
	bars.MergeAddresses(addresses)

	swaps, err := c.SwapsNumber(ctx, seriesRequestOf(inner))
	if err != nil {
		return nil, err
	}
	if len(swaps) == 0 {
		return nil, fmt.Errorf("%w: swap counts", ErrEmptySeries)
	}
	bars.MergeSwaps(swaps)

	return bars, nil
}

// resolveFrameRequest validates a frame request once and rewrites it
// into its pre-validated form, so the underlying series calls do not
// validate again.
func (c *Client) resolveFrameRequest(ctx context.Context, req CandlesRequest) (CandlesRequest, error) {
	if req.Against == "" {
		req.Against = AgainstUSD
	}
	res := req.Resolution
	if res == "" {
		res = H1
	}
	if req.SkipValidation {
		req.Resolution = res
		return req, nil
	}

	chain := effectiveChain(req.Chain)
	if _, err := c.validateChain(chain); err != nil {
		return CandlesRequest{}, err
	}
	contract, err := c.resolveToken(ctx, req.Symbol, req.Contract, chain)
	if err != nil {
		return CandlesRequest{}, err
	}
	if err := validateAgainst(req.Against); err != nil {
		return CandlesRequest{}, err
	}
	fromTS, fromSet, toTS, toSet, err := c.validateFromTo(req.From, req.To)
	if err != nil {
		return CandlesRequest{}, err
	}
	if res, err = validateResolution(res); err != nil {
		return CandlesRequest{}, err
	}

	inner := CandlesRequest{
		TokenQuery: TokenQuery{
			Contract:       contract,
			Chain:          chain,
			SkipValidation: true,
		},
		Resolution: res,
		Against:    req.Against,
		Platform:   req.Platform,
	}
	if fromSet {
		inner.From = fromTS
	}
	if toSet {
		inner.To = toTS
	}
	return inner, nil
}

func seriesRequestOf(req CandlesRequest) SeriesRequest {
	return SeriesRequest{
		TokenQuery: req.TokenQuery,
		From:       req.From,
		To:         req.To,
		Resolution: req.Resolution,
	}
}
