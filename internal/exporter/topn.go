package exporter

import (
	"fmt"
	"sort"

	"camscan/internal/scanner"
)

// Metric selects the ranking column for a Top-N block.
type Metric int

const (
	MetricOpenInterest Metric = iota
	MetricOpenInterestChange
	MetricVolume
	MetricTrades
)

// Metrics lists every ranking metric in report order.
var Metrics = []Metric{MetricOpenInterest, MetricOpenInterestChange, MetricVolume, MetricTrades}

// Header returns the source column name used in the workbook.
func (m Metric) Header() string {
	switch m {
	case MetricOpenInterest:
		return "OpnIntrst"
	case MetricOpenInterestChange:
		return "ChngInOpnIntrst"
	case MetricVolume:
		return "TtlTradgVol"
	case MetricTrades:
		return "TtlNbOfTxsExctd"
	default:
		return "unknown"
	}
}

// Title returns the block heading for a Top-N table.
func (m Metric) Title(n int) string {
	switch m {
	case MetricOpenInterest:
		return fmt.Sprintf("Top %d Open Interest", n)
	case MetricOpenInterestChange:
		return fmt.Sprintf("Top %d Change in OI", n)
	case MetricVolume:
		return fmt.Sprintf("Top %d Volume", n)
	case MetricTrades:
		return fmt.Sprintf("Top %d Transactions", n)
	default:
		return "unknown"
	}
}

// Value extracts the ranked field from a result row.
func (m Metric) Value(r scanner.Result) int64 {
	switch m {
	case MetricOpenInterest:
		return r.OpenInterest
	case MetricOpenInterestChange:
		return r.OpenInterestChange
	case MetricVolume:
		return r.Volume
	case MetricTrades:
		return r.Trades
	default:
		return 0
	}
}

// TopN returns the n highest rows by the metric. The sort is stable and
// descending, so rows with equal values keep their original order.
func TopN(results []scanner.Result, metric Metric, n int) []scanner.Result {
	if n <= 0 {
		return nil
	}
	ranked := make([]scanner.Result, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return metric.Value(ranked[i]) > metric.Value(ranked[j])
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
