package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SnapshotsCollected counts snapshots handed to the router, by asset
	// and cadence.
	SnapshotsCollected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatherer_snapshots_total",
			Help: "Total snapshots collected",
		},
		[]string{"asset", "cadence"},
	)

	// PollErrors counts failed fetches during a collection tick, by source
	// (clob, spot).
	PollErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatherer_poll_errors_total",
			Help: "Total failed fetches during collection ticks",
		},
		[]string{"source"},
	)

	// CatalogueRefreshes counts successful registry resolutions against the
	// Gamma catalogue.
	CatalogueRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gatherer_catalogue_refreshes_total",
			Help: "Total successful contract resolutions",
		},
	)

	// ContainmentMisses counts ticks where a cached window no longer
	// contained the tick instant, by asset and cadence.
	ContainmentMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gatherer_containment_misses_total",
			Help: "Total ticks skipped because the cached window had rolled over",
		},
		[]string{"asset", "cadence"},
	)

	// SpotPrice is the last spot price observed per asset.
	SpotPrice = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gatherer_spot_price",
			Help: "Last observed spot price",
		},
		[]string{"asset"},
	)
)
