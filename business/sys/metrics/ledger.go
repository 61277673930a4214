package metrics

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/prometheus/client_golang/prometheus"
)

// LedgerCollector reports the ledger statistics at scrape time.
type LedgerCollector struct {
	stats       func() state.Stats
	height      *prometheus.Desc
	pending     *prometheus.Desc
	difficulty  *prometheus.Desc
	blocksMined *prometheus.Desc
	attempts    *prometheus.Desc
}

// NewLedgerCollector constructs a collector that reads from the specified
// stats function on every scrape.
func NewLedgerCollector(stats func() state.Stats) *LedgerCollector {
	return &LedgerCollector{
		stats: stats,
		height: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "chain", "height"),
			"Position of the chain tip, genesis is 0.",
			nil, nil,
		),
		pending: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "mempool", "pending"),
			"Number of transactions waiting to be mined.",
			nil, nil,
		),
		difficulty: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "chain", "difficulty"),
			"Leading zeros required in an accepted hash.",
			nil, nil,
		),
		blocksMined: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "mining", "blocks_total"),
			"Blocks mined by this node.",
			nil, nil,
		),
		attempts: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "mining", "attempts_total"),
			"Hashes computed by the POW search.",
			nil, nil,
		),
	}
}

// Describe implements the prometheus.Collector interface.
func (c *LedgerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.height
	ch <- c.pending
	ch <- c.difficulty
	ch <- c.blocksMined
	ch <- c.attempts
}

// Collect implements the prometheus.Collector interface.
func (c *LedgerCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.stats()

	ch <- prometheus.MustNewConstMetric(c.height, prometheus.GaugeValue, float64(stats.Height))
	ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue, float64(stats.Pending))
	ch <- prometheus.MustNewConstMetric(c.difficulty, prometheus.GaugeValue, float64(stats.Difficulty))
	ch <- prometheus.MustNewConstMetric(c.blocksMined, prometheus.CounterValue, float64(stats.BlocksMined))
	ch <- prometheus.MustNewConstMetric(c.attempts, prometheus.CounterValue, float64(stats.Attempts))
}
