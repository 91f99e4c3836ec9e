package scanner

import "camscan/internal/bhavcopy"

// Result is one scanned (symbol, option right) pair. Rows are created once
// by the analyzer and never mutated after append.
type Result struct {
	Symbol    string
	Expiry    string // raw expiry string of the nearest future
	SpotClose float64
	Strike    float64
	Right     bhavcopy.OptionRight

	// Today's session of the ATM contract.
	Open  float64
	High  float64
	Low   float64
	Close float64

	OpenInterest       int64
	OpenInterestChange int64
	Volume             int64
	Trades             int64

	Today     Levels
	Yesterday *Levels // nil when yesterday had no matching contract

	// Classification flags. All four require yesterday's levels and use
	// strict inequalities; without a yesterday match they stay false.
	InsideCamarilla bool // today H4 < yest H3 and today L4 > yest L3
	InsideH4L4      bool // today H4 < yest H4 and today L4 > yest L4
	HigherValue     bool // today L4 > yest H4
	LowerValue      bool // today H4 < yest L4
}
