package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ── HTTP request metrics (RED method) ──────────────────────────────────

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stakewatch",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status_code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stakewatch",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "stakewatch",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being processed.",
	})
)

// ── Fetch / refresh-cycle metrics ──────────────────────────────────────

var (
	FetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stakewatch",
		Subsystem: "fetch",
		Name:      "total",
		Help:      "Total number of fetch attempts per upstream source.",
	}, []string{"source", "status"})

	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stakewatch",
		Subsystem: "fetch",
		Name:      "duration_seconds",
		Help:      "Duration of fetches per upstream source in seconds.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"source"})

	FetchLastSuccess = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "stakewatch",
		Subsystem: "fetch",
		Name:      "last_success_timestamp",
		Help:      "Unix timestamp of the last successful fetch per source.",
	}, []string{"source"})
)

// ── Snapshot metrics ───────────────────────────────────────────────────

var (
	SnapshotPools = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "stakewatch",
		Subsystem: "snapshot",
		Name:      "pools",
		Help:      "Number of ranked pools in the current snapshot.",
	})

	SnapshotTopScore = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "stakewatch",
		Subsystem: "snapshot",
		Name:      "top_score",
		Help:      "Risk-adjusted score of the best-ranked pool.",
	})

	SnapshotETHPrice = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "stakewatch",
		Subsystem: "snapshot",
		Name:      "eth_price_usd",
		Help:      "ETH price used for the current snapshot.",
	})

	SnapshotGasGwei = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "stakewatch",
		Subsystem: "snapshot",
		Name:      "gas_gwei",
		Help:      "Gas price used for the current snapshot.",
	})
)
