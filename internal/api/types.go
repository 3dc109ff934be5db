package api

// GammaMarket represents a market from the Gamma catalogue API.
type GammaMarket struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Question    string `json:"question"`
	ConditionID string `json:"conditionId"`

	// JSON-encoded string arrays, e.g. "[\"1234...\", \"5678...\"]".
	// Gamma double-encodes these fields.
	ClobTokenIDs string `json:"clobTokenIds"`
	Outcomes     string `json:"outcomes"`

	Active bool `json:"active"`
	Closed bool `json:"closed"`

	// Timestamps (ISO 8601)
	EndDate   string `json:"endDate"`
	UpdatedAt string `json:"updatedAt"`
}

// GetGammaMarketsOptions filters a Gamma catalogue query.
type GetGammaMarketsOptions struct {
	Slug   string // Exact slug lookup
	Active bool   // Only active markets
	Closed *bool  // Filter on closed flag when non-nil
	Limit  int    // Page size
	Offset int    // Page offset
}

// BookLevel is one price level of a CLOB order book. Prices and sizes arrive
// as decimal strings.
type BookLevel struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// BookResponse from GET /book on the CLOB API.
type BookResponse struct {
	Market    string      `json:"market"`
	AssetID   string      `json:"asset_id"`
	Timestamp string      `json:"timestamp"` // Milliseconds since epoch, as a string
	Bids      []BookLevel `json:"bids"`
	Asks      []BookLevel `json:"asks"`
}

// MidpointResponse from GET /midpoint on the CLOB API.
type MidpointResponse struct {
	Mid string `json:"mid"`
}

// SpotTickerResponse from GET /api/v3/ticker/price on the spot exchange.
type SpotTickerResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}
