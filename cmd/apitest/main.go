// Command apitest is a manual probe for the upstream APIs.
//
// It prints the predicted active slug for every tracked asset and cadence,
// and with -fetch verifies each against the Gamma catalogue and pulls the
// current CLOB midpoint and spot price.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rickgao/polymarket-data/internal/api"
	"github.com/rickgao/polymarket-data/internal/config"
	"github.com/rickgao/polymarket-data/internal/contract"
)

func main() {
	gammaURL := flag.String("gamma", config.DefaultGammaURL, "Gamma catalogue base URL")
	clobURL := flag.String("clob", config.DefaultCLOBURL, "CLOB base URL")
	spotURL := flag.String("spot", config.DefaultSpotURL, "spot exchange base URL")
	fetch := flag.Bool("fetch", false, "verify slugs against Gamma and fetch quotes")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	gamma := api.NewGamma(*gammaURL)
	clob := api.NewCLOB(*clobURL)
	spot := api.NewSpot(*spotURL)

	now := time.Now()
	fmt.Printf("now: %s\n\n", now.Format(time.RFC3339))

	for _, asset := range contract.Assets() {
		if *fetch {
			price, err := spot.GetPrice(ctx, asset)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: spot price: %v\n", asset.Short(), err)
			} else {
				fmt.Printf("%s spot: %.2f\n", asset.Short(), price)
			}
		}

		for _, cadence := range contract.Cadences() {
			w := contract.ActiveWindow(asset, cadence, now)
			fmt.Printf("  %-5s %-6s %s  [%s, +%s)\n",
				asset.Short(), cadence.String(), w.Slug(),
				w.Start.Format(time.RFC3339), cadence.Duration())

			if !*fetch {
				continue
			}

			gm, err := gamma.GetMarketBySlug(ctx, w.Slug())
			if err != nil {
				fmt.Fprintf(os.Stderr, "    gamma: %v\n", err)
				continue
			}
			if gm == nil {
				fmt.Println("    gamma: not listed")
				continue
			}

			m, err := gm.ToModel()
			if err != nil {
				fmt.Fprintf(os.Stderr, "    gamma: %v\n", err)
				continue
			}
			fmt.Printf("    listed: condition=%s up=%s\n", m.ConditionID, m.UpTokenID)

			mid, err := clob.GetMidpoint(ctx, m.UpTokenID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "    clob: %v\n", err)
				continue
			}
			fmt.Printf("    midpoint: %.3f\n", mid)
		}
		fmt.Println()
	}
}
