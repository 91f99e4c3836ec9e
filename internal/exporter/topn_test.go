package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camscan/internal/scanner"
)

func row(symbol string, oi, chg, vol, trades int64) scanner.Result {
	return scanner.Result{
		Symbol:             symbol,
		OpenInterest:       oi,
		OpenInterestChange: chg,
		Volume:             vol,
		Trades:             trades,
	}
}

func symbols(rows []scanner.Result) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Symbol
	}
	return out
}

func TestTopNDescending(t *testing.T) {
	results := []scanner.Result{
		row("A", 100, 0, 0, 0),
		row("B", 300, 0, 0, 0),
		row("C", 200, 0, 0, 0),
	}

	ranked := TopN(results, MetricOpenInterest, 2)
	assert.Equal(t, []string{"B", "C"}, symbols(ranked))
}

// Equal metric values keep input order.
func TestTopNStableTies(t *testing.T) {
	results := []scanner.Result{
		row("A", 0, 0, 50, 0),
		row("B", 0, 0, 50, 0),
		row("C", 0, 0, 90, 0),
	}

	ranked := TopN(results, MetricVolume, 3)
	assert.Equal(t, []string{"C", "A", "B"}, symbols(ranked))
}

func TestTopNShortInput(t *testing.T) {
	results := []scanner.Result{row("A", 1, 0, 0, 0)}

	ranked := TopN(results, MetricOpenInterest, 5)
	require.Len(t, ranked, 1)
	assert.Equal(t, "A", ranked[0].Symbol)
}

func TestTopNNonPositive(t *testing.T) {
	results := []scanner.Result{row("A", 1, 0, 0, 0)}

	assert.Nil(t, TopN(results, MetricOpenInterest, 0))
	assert.Nil(t, TopN(results, MetricOpenInterest, -1))
}

func TestTopNDoesNotMutateInput(t *testing.T) {
	results := []scanner.Result{
		row("A", 100, 0, 0, 0),
		row("B", 300, 0, 0, 0),
	}

	_ = TopN(results, MetricOpenInterest, 2)
	assert.Equal(t, []string{"A", "B"}, symbols(results))
}

func TestTopNNegativeChangeRanking(t *testing.T) {
	results := []scanner.Result{
		row("A", 0, -40, 0, 0),
		row("B", 0, 25, 0, 0),
		row("C", 0, -5, 0, 0),
	}

	ranked := TopN(results, MetricOpenInterestChange, 3)
	assert.Equal(t, []string{"B", "C", "A"}, symbols(ranked))
}

func TestMetricHeadersAndTitles(t *testing.T) {
	assert.Equal(t, "OpnIntrst", MetricOpenInterest.Header())
	assert.Equal(t, "ChngInOpnIntrst", MetricOpenInterestChange.Header())
	assert.Equal(t, "TtlTradgVol", MetricVolume.Header())
	assert.Equal(t, "TtlNbOfTxsExctd", MetricTrades.Header())

	assert.Equal(t, "Top 5 Open Interest", MetricOpenInterest.Title(5))
	assert.Equal(t, "Top 3 Change in OI", MetricOpenInterestChange.Title(3))
	assert.Equal(t, "Top 5 Volume", MetricVolume.Title(5))
	assert.Equal(t, "Top 5 Transactions", MetricTrades.Title(5))
}

func TestMetricValue(t *testing.T) {
	r := row("A", 1, 2, 3, 4)

	assert.Equal(t, int64(1), MetricOpenInterest.Value(r))
	assert.Equal(t, int64(2), MetricOpenInterestChange.Value(r))
	assert.Equal(t, int64(3), MetricVolume.Value(r))
	assert.Equal(t, int64(4), MetricTrades.Value(r))
}
