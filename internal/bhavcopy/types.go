package bhavcopy

import "time"

// InstrumentType is the FinInstrmTp classification of a bhav copy row.
type InstrumentType string

const (
	// InstrumentStockFuture marks single-stock futures rows.
	InstrumentStockFuture InstrumentType = "STF"
	// InstrumentStockOption marks single-stock options rows.
	InstrumentStockOption InstrumentType = "STO"
)

// OptionRight is the OptnTp side of an options contract.
type OptionRight string

const (
	RightCall OptionRight = "CE"
	RightPut  OptionRight = "PE"
)

// Record is one normalized bhav copy row. Records are immutable once loaded.
type Record struct {
	Symbol     string
	Instrument InstrumentType

	// ExpiryRaw is the trimmed source string. Contract matching across
	// snapshots uses this string, not the parsed date, so both days must
	// carry the same date representation.
	ExpiryRaw string
	// Expiry is the parsed date; zero when the source string could not be
	// parsed. Such rows are kept but excluded from expiry-based grouping.
	Expiry time.Time

	Strike float64
	Right  OptionRight

	Open  float64
	High  float64
	Low   float64
	Close float64

	OpenInterest       int64
	OpenInterestChange int64
	Volume             int64
	Trades             int64
}

// HasExpiry reports whether the expiry string parsed to a usable date.
func (r Record) HasExpiry() bool {
	return !r.Expiry.IsZero()
}

// Snapshot holds the full record set of one day's archive.
type Snapshot struct {
	Records []Record
}

// Futures returns the single-stock futures subset in source order.
func (s *Snapshot) Futures() []Record {
	return s.subset(InstrumentStockFuture)
}

// Options returns the single-stock options subset in source order.
func (s *Snapshot) Options() []Record {
	return s.subset(InstrumentStockOption)
}

func (s *Snapshot) subset(t InstrumentType) []Record {
	var out []Record
	for _, rec := range s.Records {
		if rec.Instrument == t {
			out = append(out, rec)
		}
	}
	return out
}
