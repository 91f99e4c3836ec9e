package bhavcopy

import (
	"archive/zip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// ErrNoDataFile indicates the archive holds no CSV data file. The load is
// all-or-nothing: callers treat a failed load as "no data" for that day.
var ErrNoDataFile = errors.New("bhavcopy: no CSV data file in archive")

// MalformedError reports a numeric field that was present but unparseable.
// A single malformed field fails the whole load; there is no partial-row
// recovery.
type MalformedError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("bhavcopy: malformed record at line %d: %s=%q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// Expiry strings arrive either as ISO dates or day-month-abbreviation-year.
var expiryLayouts = []string{"2006-01-02", "02-Jan-2006"}

// columns maps UDiFF header names to their index in the data file.
var requiredColumns = []string{
	"TckrSymb", "FinInstrmTp", "XpryDt", "StrkPric", "OptnTp",
	"OpnPric", "HghPric", "LwPric", "ClsPric",
	"OpnIntrst", "ChngInOpnIntrst", "TtlTradgVol", "TtlNbOfTxsExctd",
}

// Load reads a bhav copy ZIP archive from disk.
func Load(path string) (*Snapshot, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	defer zr.Close()
	return loadArchive(&zr.Reader)
}

// LoadReader reads a bhav copy ZIP archive from memory. Used by the upload
// endpoint, which holds the archive bytes rather than a path.
func LoadReader(r io.ReaderAt, size int64) (*Snapshot, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return loadArchive(zr)
}

func loadArchive(zr *zip.Reader) (*Snapshot, error) {
	// First CSV member by archive listing order wins.
	var data *zip.File
	for _, f := range zr.File {
		if strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
			data = f
			break
		}
	}
	if data == nil {
		return nil, ErrNoDataFile
	}

	rc, err := data.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", data.Name, err)
	}
	defer rc.Close()

	snap, err := parseCSV(rc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", data.Name, err)
	}

	slog.Debug("loaded bhav copy",
		slog.String("member", data.Name),
		slog.Int("records", len(snap.Records)))
	return snap, nil
}

func parseCSV(r io.Reader) (*Snapshot, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	field := func(row []string, name string) string {
		idx := columns[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	snap := &Snapshot{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		rec := Record{
			Symbol:     field(row, "TckrSymb"),
			Instrument: InstrumentType(field(row, "FinInstrmTp")),
			ExpiryRaw:  field(row, "XpryDt"),
			Right:      OptionRight(field(row, "OptnTp")),
		}
		rec.Expiry = parseExpiry(rec.ExpiryRaw)

		// Futures rows carry empty strike and option-type cells, so an
		// empty numeric field is zero, not a malformed record.
		numerics := []struct {
			name string
			f    *float64
			i    *int64
		}{
			{name: "StrkPric", f: &rec.Strike},
			{name: "OpnPric", f: &rec.Open},
			{name: "HghPric", f: &rec.High},
			{name: "LwPric", f: &rec.Low},
			{name: "ClsPric", f: &rec.Close},
			{name: "OpnIntrst", i: &rec.OpenInterest},
			{name: "ChngInOpnIntrst", i: &rec.OpenInterestChange},
			{name: "TtlTradgVol", i: &rec.Volume},
			{name: "TtlNbOfTxsExctd", i: &rec.Trades},
		}
		for _, col := range numerics {
			raw := field(row, col.name)
			if raw == "" {
				continue
			}
			if col.f != nil {
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, &MalformedError{Line: line, Field: col.name, Value: raw, Err: err}
				}
				*col.f = v
			} else {
				v, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					return nil, &MalformedError{Line: line, Field: col.name, Value: raw, Err: err}
				}
				*col.i = v
			}
		}

		snap.Records = append(snap.Records, rec)
	}

	return snap, nil
}

// parseExpiry tries the accepted layouts in order. An unparseable string
// yields the zero time; the row itself is still loaded.
func parseExpiry(s string) time.Time {
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
