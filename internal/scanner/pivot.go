package scanner

import "math"

// Levels holds the eight Camarilla bands for one session. In the
// non-degenerate case H4 > H3 > H2 > H1 >= close >= L1 > L2 > L3 > L4;
// a zero-range session collapses every level to the close.
type Levels struct {
	H4 float64
	H3 float64
	H2 float64
	H1 float64
	L1 float64
	L2 float64
	L3 float64
	L4 float64
}

// Camarilla computes the pivot bands from a session's high/low/close.
// A negative range (high < low) is not validated and propagates through
// the formula unchanged.
func Camarilla(high, low, close float64) Levels {
	r := high - low
	if r == 0 {
		return Levels{
			H4: close, H3: close, H2: close, H1: close,
			L1: close, L2: close, L3: close, L4: close,
		}
	}

	return Levels{
		H4: close + r*1.1/2,
		H3: close + r*1.1/4,
		H2: close + r*1.1/6,
		H1: close + r*1.1/12,
		L1: close - r*1.1/12,
		L2: close - r*1.1/6,
		L3: close - r*1.1/4,
		L4: close - r*1.1/2,
	}
}

// Round2 returns a copy with every level rounded to two decimal places.
// Emitted result rows carry rounded levels; classification always runs on
// the unrounded values.
func (l Levels) Round2() Levels {
	return Levels{
		H4: round2(l.H4), H3: round2(l.H3), H2: round2(l.H2), H1: round2(l.H1),
		L1: round2(l.L1), L2: round2(l.L2), L3: round2(l.L3), L4: round2(l.L4),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
