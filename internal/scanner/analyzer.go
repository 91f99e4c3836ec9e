package scanner

import (
	"context"
	"fmt"
	"log/slog"

	"camscan/internal/bhavcopy"
)

// rights enumerates the option sides scanned per underlying, in emission
// order.
var rights = []bhavcopy.OptionRight{bhavcopy.RightCall, bhavcopy.RightPut}

// Analyzer pairs two daily snapshots and produces one Result per
// (symbol, option right) with an ATM contract today.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer. A nil logger falls back to slog.Default.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger}
}

// Analyze runs the day-pair scan. Loader failures are the caller's
// concern: both snapshots must be non-nil. Per-symbol gaps (no dated
// future, no options on the future's expiry, no ATM contract, no
// yesterday match) are silent per-unit skips, never batch failures.
func (a *Analyzer) Analyze(ctx context.Context, today, yesterday *bhavcopy.Snapshot) ([]Result, error) {
	if today == nil || yesterday == nil {
		return nil, fmt.Errorf("analyze: both snapshots are required")
	}

	yestIndex := BuildIndex(yesterday)
	futures := today.Futures()
	options := today.Options()

	// Underlyings in order of first appearance in today's futures subset.
	var symbols []string
	seen := make(map[string]bool, len(futures))
	for _, f := range futures {
		if !seen[f.Symbol] {
			seen[f.Symbol] = true
			symbols = append(symbols, f.Symbol)
		}
	}

	a.logger.InfoContext(ctx, "scanning underlyings",
		"symbols", len(symbols),
		"today_options", len(options),
		"yesterday_contracts", len(yestIndex),
	)

	var results []Result
	for _, symbol := range symbols {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("analyze cancelled: %w", ctx.Err())
		default:
		}

		fut, ok := nearestFuture(futures, symbol)
		if !ok {
			a.logger.DebugContext(ctx, "no dated future", "symbol", symbol)
			continue
		}

		spot := fut.Close
		expiry := fut.ExpiryRaw

		// Options constrained to exactly the future's expiry string.
		var chain []bhavcopy.Record
		for _, o := range options {
			if o.Symbol == symbol && o.ExpiryRaw == expiry {
				chain = append(chain, o)
			}
		}
		if len(chain) == 0 {
			a.logger.DebugContext(ctx, "no options on nearest expiry",
				"symbol", symbol, "expiry", expiry)
			continue
		}

		atm, ok := NearestStrike(spot, distinctStrikes(chain))
		if !ok {
			continue
		}

		for _, right := range rights {
			rec, ok := firstContract(chain, atm, right)
			if !ok {
				continue
			}
			results = append(results, a.scanContract(rec, spot, atm, yestIndex))
		}
	}

	a.logger.InfoContext(ctx, "scan complete", "results", len(results))
	return results, nil
}

// scanContract builds the Result row for one ATM contract, classifying it
// against yesterday's session when a matching contract exists.
func (a *Analyzer) scanContract(rec bhavcopy.Record, spot, atm float64, yestIndex Index) Result {
	res := Result{
		Symbol:             rec.Symbol,
		Expiry:             rec.ExpiryRaw,
		SpotClose:          spot,
		Strike:             atm,
		Right:              rec.Right,
		Open:               rec.Open,
		High:               rec.High,
		Low:                rec.Low,
		Close:              rec.Close,
		OpenInterest:       rec.OpenInterest,
		OpenInterestChange: rec.OpenInterestChange,
		Volume:             rec.Volume,
		Trades:             rec.Trades,
	}

	todayLv := Camarilla(rec.High, rec.Low, rec.Close)
	res.Today = todayLv.Round2()

	key := ContractKey{Symbol: rec.Symbol, Strike: atm, Right: rec.Right, Expiry: rec.ExpiryRaw}
	prev, ok := yestIndex.Lookup(key)
	if !ok {
		return res
	}

	yestLv := Camarilla(prev.High, prev.Low, prev.Close)
	rounded := yestLv.Round2()
	res.Yesterday = &rounded

	res.InsideCamarilla = todayLv.H4 < yestLv.H3 && todayLv.L4 > yestLv.L3
	res.InsideH4L4 = todayLv.H4 < yestLv.H4 && todayLv.L4 > yestLv.L4
	res.HigherValue = todayLv.L4 > yestLv.H4
	res.LowerValue = todayLv.H4 < yestLv.L4

	return res
}

// nearestFuture returns the symbol's future with the minimum parsed
// expiry. Rows whose expiry failed to parse are ignored; an exact date tie
// keeps the earlier row in dataset order.
func nearestFuture(futures []bhavcopy.Record, symbol string) (bhavcopy.Record, bool) {
	var best bhavcopy.Record
	found := false
	for _, f := range futures {
		if f.Symbol != symbol || !f.HasExpiry() {
			continue
		}
		if !found || f.Expiry.Before(best.Expiry) {
			best = f
			found = true
		}
	}
	return best, found
}

// distinctStrikes deduplicates the chain's strikes, preserving
// first-appearance order for the ATM tie-break.
func distinctStrikes(chain []bhavcopy.Record) []float64 {
	var strikes []float64
	seen := make(map[float64]bool, len(chain))
	for _, o := range chain {
		if !seen[o.Strike] {
			seen[o.Strike] = true
			strikes = append(strikes, o.Strike)
		}
	}
	return strikes
}

// firstContract returns the first chain row matching strike and right.
func firstContract(chain []bhavcopy.Record, strike float64, right bhavcopy.OptionRight) (bhavcopy.Record, bool) {
	for _, o := range chain {
		if o.Strike == strike && o.Right == right {
			return o, true
		}
	}
	return bhavcopy.Record{}, false
}
