package scanner

import "camscan/internal/bhavcopy"

// ContractKey identifies one option contract for day-over-day pairing.
// Expiry is the raw source string, not the parsed date: two snapshots must
// use a consistent date representation or lookups silently miss. Strike is
// a float64 on both the build and lookup side, so there is no precision
// drift between the two.
type ContractKey struct {
	Symbol string
	Strike float64
	Right  bhavcopy.OptionRight
	Expiry string
}

// Index maps yesterday's option contracts by ContractKey.
type Index map[ContractKey]bhavcopy.Record

// BuildIndex indexes the options subset of a snapshot. A duplicate key is
// last-write-wins; real bhav copies have no true duplicates, but that is
// the defined tie-break if one appears.
func BuildIndex(snap *bhavcopy.Snapshot) Index {
	idx := make(Index)
	for _, rec := range snap.Options() {
		key := ContractKey{
			Symbol: rec.Symbol,
			Strike: rec.Strike,
			Right:  rec.Right,
			Expiry: rec.ExpiryRaw,
		}
		idx[key] = rec
	}
	return idx
}

// Lookup fetches a contract by key.
func (ix Index) Lookup(key ContractKey) (bhavcopy.Record, bool) {
	rec, ok := ix[key]
	return rec, ok
}
