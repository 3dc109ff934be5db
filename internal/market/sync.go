package market

import (
	"context"
	"fmt"
	"time"

	"github.com/rickgao/polymarket-data/internal/api"
	"github.com/rickgao/polymarket-data/internal/contract"
	"github.com/rickgao/polymarket-data/internal/metrics"
)

// refresh resolves the active contract for one slot and stores it.
//
// The fast path predicts the slug from wall-clock arithmetic and looks it up
// directly. When Gamma does not list the predicted slug (text-grammar markets,
// listing lag) the fallback scans the active catalogue and decodes each slug
// until one covers the current instant.
func (r *registryImpl) refresh(ctx context.Context, k key) error {
	now := time.Now()
	w := contract.ActiveWindow(k.asset, k.cadence, now)
	predicted := w.Slug()

	gm, err := r.gamma.GetMarketBySlug(ctx, predicted)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", predicted, err)
	}

	if gm == nil {
		gm, w, err = r.scanCatalogue(ctx, k, now)
		if err != nil {
			return fmt.Errorf("scan for %s: %w", predicted, err)
		}
		if gm == nil {
			// Leave any stale entry out of the cache rather than poll a
			// window we cannot verify.
			r.state.drop(k)
			return fmt.Errorf("no listed contract covers %s %s at %s",
				k.asset.Short(), k.cadence.String(), now.Format(time.RFC3339))
		}
	}

	m, err := gm.ToModel()
	if err != nil {
		return fmt.Errorf("convert %s: %w", gm.Slug, err)
	}

	r.state.put(k, Entry{Window: w, Market: m, ResolvedAt: time.Now()})
	metrics.CatalogueRefreshes.Inc()

	r.logger.Debug("resolved contract",
		"asset", k.asset.Short(),
		"cadence", k.cadence.String(),
		"slug", m.Slug,
		"window_start", w.Start.Format(time.RFC3339),
	)
	return nil
}

// scanCatalogue pages through active Gamma markets and decodes each slug,
// returning the first market whose decoded window contains now for this slot.
func (r *registryImpl) scanCatalogue(
	ctx context.Context,
	k key,
	now time.Time,
) (*api.GammaMarket, contract.Window, error) {
	for page := 0; page < r.cfg.ScanMaxPages; page++ {
		markets, err := r.gamma.GetMarkets(ctx, api.GetGammaMarketsOptions{
			Active: true,
			Limit:  r.cfg.ScanPageSize,
			Offset: page * r.cfg.ScanPageSize,
		})
		if err != nil {
			return nil, contract.Window{}, err
		}

		for i := range markets {
			w, _, ok := contract.DecodeSlug(markets[i].Slug, k.asset, now)
			if !ok || w.Cadence != k.cadence {
				continue
			}
			if w.Contains(now) {
				return &markets[i], w, nil
			}
		}

		if len(markets) < r.cfg.ScanPageSize {
			break
		}
	}

	return nil, contract.Window{}, nil
}
