package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CLOB is a client for the Polymarket CLOB order-book API.
type CLOB struct {
	*Client
}

// NewCLOB creates a CLOB client.
func NewCLOB(baseURL string, opts ...ClientOption) *CLOB {
	return &CLOB{Client: NewClient(baseURL, opts...)}
}

// GetBook fetches the full order book for a token.
func (c *CLOB) GetBook(ctx context.Context, tokenID string) (*BookResponse, error) {
	query := url.Values{}
	query.Set("token_id", tokenID)

	var resp BookResponse
	if err := c.get(ctx, "/book", query, &resp); err != nil {
		return nil, fmt.Errorf("get book %s: %w", tokenID, err)
	}

	return &resp, nil
}

// GetMidpoint fetches the midpoint price for a token, in dollars.
func (c *CLOB) GetMidpoint(ctx context.Context, tokenID string) (float64, error) {
	query := url.Values{}
	query.Set("token_id", tokenID)

	var resp MidpointResponse
	if err := c.get(ctx, "/midpoint", query, &resp); err != nil {
		return 0, fmt.Errorf("get midpoint %s: %w", tokenID, err)
	}

	mid, err := strconv.ParseFloat(resp.Mid, 64)
	if err != nil {
		return 0, fmt.Errorf("parse midpoint %q: %w", resp.Mid, err)
	}

	return mid, nil
}
