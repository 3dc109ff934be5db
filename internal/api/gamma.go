package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Gamma is a client for the Polymarket Gamma catalogue API.
type Gamma struct {
	*Client
}

// NewGamma creates a Gamma catalogue client.
func NewGamma(baseURL string, opts ...ClientOption) *Gamma {
	return &Gamma{Client: NewClient(baseURL, opts...)}
}

// GetMarkets fetches a page of catalogue entries.
func (g *Gamma) GetMarkets(ctx context.Context, opts GetGammaMarketsOptions) ([]GammaMarket, error) {
	query := url.Values{}

	if opts.Slug != "" {
		query.Set("slug", opts.Slug)
	}
	if opts.Active {
		query.Set("active", "true")
	}
	if opts.Closed != nil {
		query.Set("closed", strconv.FormatBool(*opts.Closed))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}

	var resp []GammaMarket
	if err := g.get(ctx, "/markets", query, &resp); err != nil {
		return nil, fmt.Errorf("get markets: %w", err)
	}

	return resp, nil
}

// GetMarketBySlug fetches a single catalogue entry by its exact slug.
// Returns (nil, nil) when the slug is not in the catalogue; a predicted slug
// that does not exist upstream is an expected outcome, not an error.
func (g *Gamma) GetMarketBySlug(ctx context.Context, slug string) (*GammaMarket, error) {
	markets, err := g.GetMarkets(ctx, GetGammaMarketsOptions{Slug: slug})
	if err != nil {
		return nil, fmt.Errorf("get market %s: %w", slug, err)
	}
	if len(markets) == 0 {
		return nil, nil
	}
	return &markets[0], nil
}
