package helixir

import (
	"context"
	"net/url"

	"helixir/models"
)

// Social feed endpoints. Feeds span all chains, so none of them takes
// a chain parameter; filtering happens through the asset tag.

// Discord returns discord messages matching the request.
func (c *Client) Discord(ctx context.Context, req SocialRequest) ([]*models.Entity, error) {
	return c.socialFeed(ctx, req, "discord", "List[DiscordPublicMessage]")
}

// Publications returns publications matching the request.
func (c *Client) Publications(ctx context.Context, req SocialRequest) ([]*models.Entity, error) {
	return c.socialFeed(ctx, req, "publications", "List[PublicReadable]")
}

// Reddit returns reddit posts matching the request.
func (c *Client) Reddit(ctx context.Context, req SocialRequest) ([]*models.Entity, error) {
	return c.socialFeed(ctx, req, "reddit", "List[Readable]")
}

// Telegram returns telegram messages matching the request.
func (c *Client) Telegram(ctx context.Context, req SocialRequest) ([]*models.Entity, error) {
	return c.socialFeed(ctx, req, "telegram", "List[TelegramPublicMessage]")
}

// Twitter returns tweets matching the request.
func (c *Client) Twitter(ctx context.Context, req SocialRequest) ([]*models.Entity, error) {
	return c.socialFeed(ctx, req, "twitter", "List[TweetPublic]")
}

func (c *Client) socialFeed(ctx context.Context, req SocialRequest, endpoint, responseType string) ([]*models.Entity, error) {
	query := url.Values{}
	if req.SkipValidation {
		setRaw(query, "from", req.From)
	} else {
		fromTS, fromSet, err := c.validateDate(req.From)
		if err != nil {
			return nil, err
		}
		if err := c.validateLimit(req.Limit); err != nil {
			return nil, err
		}
		setUnix(query, "from", fromTS, fromSet)
	}
	setPagination(query, req.Limit, 0, "")
	if req.Tag != "" {
		query.Set("tag", req.Tag)
	}
	return c.callEntities(ctx, responseType, endpoint, query)
}
