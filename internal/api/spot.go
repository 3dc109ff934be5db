package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rickgao/polymarket-data/internal/contract"
)

// Spot is a client for the reference spot exchange's public ticker endpoint.
type Spot struct {
	*Client
}

// NewSpot creates a spot price client.
func NewSpot(baseURL string, opts ...ClientOption) *Spot {
	return &Spot{Client: NewClient(baseURL, opts...)}
}

// SpotSymbol maps an asset to the exchange's USDT pair symbol.
func SpotSymbol(asset contract.Asset) string {
	return strings.ToUpper(asset.Short()) + "USDT"
}

// GetPrice fetches the last traded spot price for an asset, in USD.
func (s *Spot) GetPrice(ctx context.Context, asset contract.Asset) (float64, error) {
	query := url.Values{}
	query.Set("symbol", SpotSymbol(asset))

	var resp SpotTickerResponse
	if err := s.get(ctx, "/api/v3/ticker/price", query, &resp); err != nil {
		return 0, fmt.Errorf("get spot price %s: %w", asset, err)
	}

	price, err := strconv.ParseFloat(resp.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("parse spot price %q: %w", resp.Price, err)
	}

	return price, nil
}
