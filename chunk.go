package helixir

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"helixir/models"

	"golang.org/x/sync/errgroup"
)

// Ranged queries. The API bounds every time-series request by both a
// per-resolution window and a candle budget, so long ranges are
// tiled into sub-requests and the results concatenated in ascending
// order. Endpoints aggregating per address carry tighter windows.

type timeWindow struct {
	from, to int64
}

func strictWindows(endpoint string) bool {
	return strings.Contains(endpoint, "active_addresses") || strings.Contains(endpoint, "moves")
}

// planWindows computes the sub-request tiling of [from, to). Unset
// bounds default to the data epoch and the current time; a future
// upper bound is clamped to now.
func (c *Client) planWindows(endpoint string, resolution Resolution, from int64, fromSet bool, to int64, toSet bool) ([]timeWindow, error) {
	tables := c.tables()
	res := string(resolution.normalize())
	r, ok := tables.Resolutions[res]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedResolution, res)
	}
	step, _ := tables.Step(res, strictWindows(endpoint))

	if !fromSet {
		from = tables.DataEpoch
	}
	now := c.now().Unix()
	if !toSet || to > now {
		to = now
	}

	if c.cfg.DisableChunking {
		delta := to - from
		if delta/r.Seconds > tables.CandleLimit || delta > step {
			return nil, fmt.Errorf("%w: %s spans %ds, maximum is %ds (%d candles)",
				ErrRangeTooLarge, res, delta, step, tables.CandleLimit)
		}
	}

	var windows []timeWindow
	for i := from; i < to; i += step {
		end := i + step
		if end > to {
			end = to
		}
		windows = append(windows, timeWindow{from: i, to: end})
	}
	return windows, nil
}

// fetchRange runs a ranged query across its windows and concatenates
// the per-window results in range order. Any failing sub-request
// fails the whole query.
func (c *Client) fetchRange(ctx context.Context, responseType, endpoint string, query url.Values, resolution Resolution, from int64, fromSet bool, to int64, toSet bool) ([]*models.Entity, error) {
	windows, err := c.planWindows(endpoint, resolution, from, fromSet, to, toSet)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, nil
	}

	fetch := func(ctx context.Context, w timeWindow) ([]*models.Entity, error) {
		q := cloneQuery(query)
		q.Set("from", strconv.FormatInt(w.from, 10))
		q.Set("to", strconv.FormatInt(w.to, 10))
		q.Set("resolution", string(resolution.normalize()))
		return c.callEntities(ctx, responseType, endpoint, q)
	}

	if c.cfg.Concurrency > 1 && len(windows) > 1 {
		results := make([][]*models.Entity, len(windows))
		group, gctx := errgroup.WithContext(ctx)
		group.SetLimit(c.cfg.Concurrency)
		for i, w := range windows {
			group.Go(func() error {
				part, err := fetch(gctx, w)
				if err != nil {
					return err
				}
				results[i] = part
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}
		var out []*models.Entity
		for _, part := range results {
			out = append(out, part...)
		}
		return out, nil
	}

	var out []*models.Entity
	for _, w := range windows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		part, err := fetch(ctx, w)
		if err != nil {
			return nil, err
		}
		out = append(out, part...)
	}
	return out, nil
}

func cloneQuery(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, vs := range q {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
