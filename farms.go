package helixir

import (
	"context"
	"fmt"

	"helixir/models"
)

// PoolsRequest parameterizes the farm pool endpoints. Platform names
// a farm, e.g. "pancake".
type PoolsRequest struct {
	Platform       string
	Chain          any
	SkipValidation bool
}

// Farms returns every farm supported on the selected chain.
func (c *Client) Farms(ctx context.Context, req ChainRequest) ([]*models.Entity, error) {
	chain := effectiveChain(req.Chain)
	if !req.SkipValidation {
		if _, err := c.validateChain(chain); err != nil {
			return nil, err
		}
	}
	endpoint := fmt.Sprintf("%s/farms", chainSegment(chain))
	return c.callEntities(ctx, "List[FarmResponse]", endpoint, nil)
}

// OptimizersNumber returns the count of supported optimizer farms.
func (c *Client) OptimizersNumber(ctx context.Context, req ChainRequest) (int64, error) {
	chain := effectiveChain(req.Chain)
	if !req.SkipValidation {
		if _, err := c.validateChain(chain); err != nil {
			return 0, err
		}
	}
	endpoint := fmt.Sprintf("%s/farms/optimizers/number", chainSegment(chain))
	return c.callInt(ctx, endpoint, nil)
}

// YieldsNumber returns the count of supported yield farms.
func (c *Client) YieldsNumber(ctx context.Context, req ChainRequest) (int64, error) {
	chain := effectiveChain(req.Chain)
	if !req.SkipValidation {
		if _, err := c.validateChain(chain); err != nil {
			return 0, err
		}
	}
	endpoint := fmt.Sprintf("%s/farms/yields/number", chainSegment(chain))
	return c.callInt(ctx, endpoint, nil)
}

// Pools returns the pools of one farm platform.
func (c *Client) Pools(ctx context.Context, req PoolsRequest) (*models.Entity, error) {
	chain := effectiveChain(req.Chain)
	if !req.SkipValidation {
		if _, err := c.validateChain(chain); err != nil {
			return nil, err
		}
	}
	endpoint := fmt.Sprintf("%s/farms/%s/pools", chainSegment(chain), req.Platform)
	return c.callEntity(ctx, "PoolsResponse", endpoint, nil)
}

// PoolsInfo returns the pools of one farm platform with their latest
// stats (APR, APY, TVL).
func (c *Client) PoolsInfo(ctx context.Context, req PoolsRequest) (*models.Entity, error) {
	chain := effectiveChain(req.Chain)
	if !req.SkipValidation {
		if _, err := c.validateChain(chain); err != nil {
			return nil, err
		}
	}
	endpoint := fmt.Sprintf("%s/farms/%s/pools/info", chainSegment(chain), req.Platform)
	return c.callEntity(ctx, "PoolsInfoResponse", endpoint, nil)
}
