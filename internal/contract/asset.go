package contract

// Asset identifies one of the crypto assets with up/down contract series.
type Asset int

const (
	BTC Asset = iota
	ETH
	SOL
	XRP
)

// assetNames maps each asset to its short ticker and the long name Polymarket
// uses interchangeably inside slugs ("btc-..." vs "bitcoin-...").
var assetNames = [...]struct {
	short string
	long  string
}{
	BTC: {"btc", "bitcoin"},
	ETH: {"eth", "ethereum"},
	SOL: {"sol", "solana"},
	XRP: {"xrp", "ripple"},
}

// Assets returns every supported asset.
func Assets() []Asset {
	return []Asset{BTC, ETH, SOL, XRP}
}

// Short returns the lowercase ticker ("btc").
func (a Asset) Short() string {
	return assetNames[a].short
}

// Long returns the long slug name ("bitcoin").
func (a Asset) Long() string {
	return assetNames[a].long
}

// String returns the short ticker.
func (a Asset) String() string {
	return a.Short()
}

// ParseAsset resolves a short ticker or long name to an Asset.
func ParseAsset(s string) (Asset, bool) {
	for _, a := range Assets() {
		if s == a.Short() || s == a.Long() {
			return a, true
		}
	}
	return 0, false
}
