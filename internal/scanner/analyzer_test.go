package scanner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camscan/internal/bhavcopy"
)

func parseDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02", "02-Jan-2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func future(symbol, expiry string, close float64) bhavcopy.Record {
	return bhavcopy.Record{
		Symbol:     symbol,
		Instrument: bhavcopy.InstrumentStockFuture,
		ExpiryRaw:  expiry,
		Expiry:     parseDate(expiry),
		Close:      close,
	}
}

func option(symbol, expiry string, strike float64, right bhavcopy.OptionRight, high, low, close float64) bhavcopy.Record {
	return bhavcopy.Record{
		Symbol:     symbol,
		Instrument: bhavcopy.InstrumentStockOption,
		ExpiryRaw:  expiry,
		Expiry:     parseDate(expiry),
		Strike:     strike,
		Right:      right,
		High:       high,
		Low:        low,
		Close:      close,
	}
}

func snap(recs ...bhavcopy.Record) *bhavcopy.Snapshot {
	return &bhavcopy.Snapshot{Records: recs}
}

func TestAnalyzeRequiresBothSnapshots(t *testing.T) {
	a := NewAnalyzer(nil)

	_, err := a.Analyze(context.Background(), nil, snap())
	assert.Error(t, err)

	_, err = a.Analyze(context.Background(), snap(), nil)
	assert.Error(t, err)
}

func TestAnalyzeEmitsCallAndPut(t *testing.T) {
	today := snap(
		future("SBIN", "2026-01-29", 803),
		option("SBIN", "2026-01-29", 790, bhavcopy.RightCall, 20, 15, 18),
		option("SBIN", "2026-01-29", 800, bhavcopy.RightCall, 14, 10, 12),
		option("SBIN", "2026-01-29", 800, bhavcopy.RightPut, 11, 8, 9),
		option("SBIN", "2026-01-29", 810, bhavcopy.RightPut, 18, 14, 16),
	)
	yesterday := snap(
		option("SBIN", "2026-01-29", 800, bhavcopy.RightCall, 15, 11, 13),
		option("SBIN", "2026-01-29", 800, bhavcopy.RightPut, 12, 9, 10),
	)

	results, err := NewAnalyzer(nil).Analyze(context.Background(), today, yesterday)
	require.NoError(t, err)
	require.Len(t, results, 2)

	ce, pe := results[0], results[1]
	assert.Equal(t, bhavcopy.RightCall, ce.Right)
	assert.Equal(t, bhavcopy.RightPut, pe.Right)

	assert.Equal(t, "SBIN", ce.Symbol)
	assert.Equal(t, "2026-01-29", ce.Expiry)
	assert.Equal(t, 803.0, ce.SpotClose)
	assert.Equal(t, 800.0, ce.Strike, "800 is nearest to spot 803")
	assert.Equal(t, 12.0, ce.Close)
	require.NotNil(t, ce.Yesterday)
	require.NotNil(t, pe.Yesterday)
}

func TestAnalyzeSkipsRightWithoutContract(t *testing.T) {
	today := snap(
		future("TCS", "2026-01-29", 4000),
		option("TCS", "2026-01-29", 4000, bhavcopy.RightCall, 60, 40, 50),
	)

	results, err := NewAnalyzer(nil).Analyze(context.Background(), today, snap())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, bhavcopy.RightCall, results[0].Right)
}

func TestAnalyzeHigherValue(t *testing.T) {
	// Yesterday H4 = 100 + 4*1.1/2 = 102.2; today L4 = 200 - 20*1.1/2 = 189.
	today := snap(
		future("INFY", "2026-01-29", 1500),
		option("INFY", "2026-01-29", 1500, bhavcopy.RightCall, 210, 190, 200),
	)
	yesterday := snap(
		option("INFY", "2026-01-29", 1500, bhavcopy.RightCall, 102, 98, 100),
	)

	results, err := NewAnalyzer(nil).Analyze(context.Background(), today, yesterday)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.True(t, r.HigherValue)
	assert.False(t, r.LowerValue)
	assert.False(t, r.InsideCamarilla)
	assert.False(t, r.InsideH4L4)
}

func TestAnalyzeLowerValue(t *testing.T) {
	// Yesterday L4 = 189; today H4 = 102.2.
	today := snap(
		future("INFY", "2026-01-29", 1500),
		option("INFY", "2026-01-29", 1500, bhavcopy.RightCall, 102, 98, 100),
	)
	yesterday := snap(
		option("INFY", "2026-01-29", 1500, bhavcopy.RightCall, 210, 190, 200),
	)

	results, err := NewAnalyzer(nil).Analyze(context.Background(), today, yesterday)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.True(t, r.LowerValue)
	assert.False(t, r.HigherValue)
	assert.False(t, r.InsideCamarilla)
	assert.False(t, r.InsideH4L4)
}

func TestAnalyzeInsideFlags(t *testing.T) {
	// Yesterday: H3 = 111, L3 = 89, H4 = 122, L4 = 78.
	// Today: H4 = 101.1, L4 = 98.9 — inside on both definitions.
	today := snap(
		future("WIPRO", "2026-01-29", 500),
		option("WIPRO", "2026-01-29", 500, bhavcopy.RightPut, 101, 99, 100),
	)
	yesterday := snap(
		option("WIPRO", "2026-01-29", 500, bhavcopy.RightPut, 120, 80, 100),
	)

	results, err := NewAnalyzer(nil).Analyze(context.Background(), today, yesterday)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.True(t, r.InsideCamarilla)
	assert.True(t, r.InsideH4L4)
	assert.False(t, r.HigherValue)
	assert.False(t, r.LowerValue)
}

// Identical sessions produce identical levels; the strict inequalities
// leave every flag false on the boundary.
func TestAnalyzeBoundaryEquality(t *testing.T) {
	today := snap(
		future("HDFC", "2026-01-29", 1600),
		option("HDFC", "2026-01-29", 1600, bhavcopy.RightCall, 105, 95, 100),
	)
	yesterday := snap(
		option("HDFC", "2026-01-29", 1600, bhavcopy.RightCall, 105, 95, 100),
	)

	results, err := NewAnalyzer(nil).Analyze(context.Background(), today, yesterday)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.False(t, r.InsideCamarilla)
	assert.False(t, r.InsideH4L4)
	assert.False(t, r.HigherValue)
	assert.False(t, r.LowerValue)
}

func TestAnalyzeMissingYesterdayMatch(t *testing.T) {
	today := snap(
		future("SBIN", "2026-01-29", 800),
		option("SBIN", "2026-01-29", 800, bhavcopy.RightCall, 14, 10, 12),
	)
	yesterday := snap(
		// Different strike: no match for the ATM contract.
		option("SBIN", "2026-01-29", 820, bhavcopy.RightCall, 15, 11, 13),
	)

	results, err := NewAnalyzer(nil).Analyze(context.Background(), today, yesterday)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Nil(t, r.Yesterday)
	assert.False(t, r.InsideCamarilla)
	assert.False(t, r.InsideH4L4)
	assert.False(t, r.HigherValue)
	assert.False(t, r.LowerValue)
}

// The future's raw expiry string drives option matching: equal dates in
// different representations produce no rows for the symbol.
func TestAnalyzeExpiryStringMismatch(t *testing.T) {
	today := snap(
		future("SBIN", "2026-01-29", 800),
		option("SBIN", "29-Jan-2026", 800, bhavcopy.RightCall, 14, 10, 12),
		option("SBIN", "29-Jan-2026", 800, bhavcopy.RightPut, 11, 8, 9),
	)

	results, err := NewAnalyzer(nil).Analyze(context.Background(), today, snap())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAnalyzeNearestExpiryFuture(t *testing.T) {
	today := snap(
		// Far month listed first; the minimum parsed expiry must win.
		future("SBIN", "2026-02-26", 810),
		future("SBIN", "2026-01-29", 800),
		option("SBIN", "2026-01-29", 800, bhavcopy.RightCall, 14, 10, 12),
		option("SBIN", "2026-02-26", 810, bhavcopy.RightCall, 22, 16, 19),
	)

	results, err := NewAnalyzer(nil).Analyze(context.Background(), today, snap())
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "2026-01-29", r.Expiry)
	assert.Equal(t, 800.0, r.SpotClose)
	assert.Equal(t, 12.0, r.Close)
}

func TestAnalyzeSkipsSymbolWithoutDatedFuture(t *testing.T) {
	today := snap(
		future("SBIN", "soon", 800),
		option("SBIN", "soon", 800, bhavcopy.RightCall, 14, 10, 12),
	)

	results, err := NewAnalyzer(nil).Analyze(context.Background(), today, snap())
	require.NoError(t, err)
	assert.Empty(t, results)
}

// Feeding the same snapshot as both days yields identical levels, so the
// inside flags stay false on boundary equality for every row.
func TestAnalyzeSameSnapshotRoundTrip(t *testing.T) {
	day := snap(
		future("SBIN", "2026-01-29", 800),
		option("SBIN", "2026-01-29", 800, bhavcopy.RightCall, 14, 10, 12),
		option("SBIN", "2026-01-29", 800, bhavcopy.RightPut, 11, 8, 9),
		future("TCS", "2026-01-29", 4000),
		option("TCS", "2026-01-29", 4000, bhavcopy.RightCall, 60, 40, 50),
	)

	results, err := NewAnalyzer(nil).Analyze(context.Background(), day, day)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, r := range results {
		require.NotNil(t, r.Yesterday)
		assert.Equal(t, r.Today, *r.Yesterday)
		assert.False(t, r.InsideCamarilla)
		assert.False(t, r.InsideH4L4)
		assert.False(t, r.HigherValue)
		assert.False(t, r.LowerValue)
	}
}

func TestAnalyzeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	today := snap(future("SBIN", "2026-01-29", 800))
	_, err := NewAnalyzer(nil).Analyze(ctx, today, snap())
	assert.ErrorIs(t, err, context.Canceled)
}
