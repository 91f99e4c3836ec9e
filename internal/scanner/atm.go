package scanner

import "math"

// NearestStrike returns the candidate strike closest to the spot price.
// Candidates are scanned in the order given and an exact distance tie
// keeps the earlier candidate, so callers must supply a deterministic
// order (the analyzer passes strikes in first-appearance order).
// ok is false when the candidate list is empty.
func NearestStrike(spot float64, strikes []float64) (strike float64, ok bool) {
	if len(strikes) == 0 {
		return 0, false
	}

	best := strikes[0]
	bestDist := math.Abs(strikes[0] - spot)
	for _, s := range strikes[1:] {
		if d := math.Abs(s - spot); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, true
}
