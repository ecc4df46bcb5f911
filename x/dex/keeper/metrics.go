package keeper

import (
	"fmt"
	"math/big"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DEXMetrics holds all Prometheus metrics for the DEX module
type DEXMetrics struct {
	// Swap metrics
	SwapsTotal  *prometheus.CounterVec
	SwapVolume  *prometheus.CounterVec
	SwapLatency prometheus.Histogram
	SwapHops    prometheus.Histogram

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec
	ShareSupply      *prometheus.GaugeVec

	// Provisioning metrics
	ProvisionsTotal      *prometheus.CounterVec
	SharesClaimed        *prometheus.CounterVec
	PairStatusChanges    *prometheus.CounterVec
	LedgerRevertFailures prometheus.Counter

	// Safety metrics
	OperationErrors   *prometheus.CounterVec
	InvariantFailures *prometheus.CounterVec
}

var (
	dexMetricsOnce sync.Once
	dexMetrics     *DEXMetrics
)

// NewDEXMetrics creates and registers DEX metrics (singleton pattern)
func NewDEXMetrics() *DEXMetrics {
	dexMetricsOnce.Do(func() {
		dexMetrics = &DEXMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "dexd",
					Subsystem: "dex",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"kind", "asset_in", "asset_out"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "dexd",
					Subsystem: "dex",
					Name:      "swap_volume_total",
					Help:      "Total swap volume in base units",
				},
				[]string{"pair", "asset"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "dexd",
					Subsystem: "dex",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			SwapHops: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "dexd",
					Subsystem: "dex",
					Name:      "swap_hops",
					Help:      "Number of pools traversed per swap",
					Buckets:   []float64{1, 2, 3, 4, 5, 6},
				},
			),

			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "dexd",
					Subsystem: "dex",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added to pools",
				},
				[]string{"pair", "asset"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "dexd",
					Subsystem: "dex",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity removed from pools",
				},
				[]string{"pair", "asset"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "dexd",
					Subsystem: "dex",
					Name:      "pool_reserves",
					Help:      "Current pool reserves",
				},
				[]string{"pair", "asset"},
			),
			ShareSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "dexd",
					Subsystem: "dex",
					Name:      "share_supply",
					Help:      "Outstanding pool shares",
				},
				[]string{"pair"},
			),

			ProvisionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "dexd",
					Subsystem: "dex",
					Name:      "provisions_total",
					Help:      "Total provisioning contributions",
				},
				[]string{"pair"},
			),
			SharesClaimed: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "dexd",
					Subsystem: "dex",
					Name:      "shares_claimed_total",
					Help:      "Total provisioning shares claimed",
				},
				[]string{"pair"},
			),
			PairStatusChanges: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "dexd",
					Subsystem: "dex",
					Name:      "pair_status_changes_total",
					Help:      "Trading pair status transitions",
				},
				[]string{"from", "to"},
			),
			LedgerRevertFailures: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "dexd",
					Subsystem: "dex",
					Name:      "ledger_revert_failures_total",
					Help:      "Ledger compensations that failed after an aborted operation",
				},
			),

			OperationErrors: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "dexd",
					Subsystem: "dex",
					Name:      "operation_errors_total",
					Help:      "Failed operations by operation and error",
				},
				[]string{"operation", "error"},
			),
			InvariantFailures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "dexd",
					Subsystem: "dex",
					Name:      "invariant_failures_total",
					Help:      "Invariant check failures",
				},
				[]string{"invariant"},
			),
		}
	})
	return dexMetrics
}

// GetDEXMetrics returns the singleton DEX metrics instance
func GetDEXMetrics() *DEXMetrics {
	return NewDEXMetrics()
}

// recordError counts a failed operation by the registered error it carries.
func (m *DEXMetrics) recordError(operation string, err error) {
	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	m.OperationErrors.WithLabelValues(operation, fmt.Sprintf("%s:%d", codespace, code)).Inc()
}

// amountFloat converts a balance for gauges and counters. Precision loss is
// acceptable here.
func amountFloat(amount math.Int) float64 {
	f, _ := new(big.Float).SetInt(amount.BigInt()).Float64()
	return f
}
