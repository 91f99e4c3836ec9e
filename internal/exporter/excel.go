package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"camscan/internal/scanner"
)

const (
	sheetMain        = "Main Data"
	sheetNarrow      = "Narrow Camarilla"
	sheetInside      = "Inside Camarilla"
	sheetHigherValue = "Higher Value Camarilla"
	sheetLowerValue  = "Lower Value Camarilla"

	defaultTopN = 5
	// headerFill is the blue used for every merged block header.
	headerFill = "4F81BD"
)

// ReportOptions configures workbook generation.
type ReportOptions struct {
	// TopN is the number of rows per ranking block. Zero or negative
	// falls back to the default of 5.
	TopN int
}

// ReportWriter renders scan results into the report workbook.
type ReportWriter struct {
	logger *slog.Logger
}

// NewReportWriter creates a report writer. A nil logger falls back to
// slog.Default.
func NewReportWriter(logger *slog.Logger) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{logger: logger}
}

var mainColumns = []string{
	"Symbol", "Expiry", "ATM_Strike", "Option_Type", "Spot_Close",
	"Today_Open", "Today_High", "Today_Low", "Today_Close",
	"Is_Inside_Camarilla", "Is_Inside_H4_L4", "Is_Higher_Value", "Is_Lower_Value",
	"OpnIntrst", "ChngInOpnIntrst", "TtlTradgVol", "TtlNbOfTxsExctd",
	"Today_H4", "Today_H3", "Today_H2", "Today_H1",
	"Today_L1", "Today_L2", "Today_L3", "Today_L4",
	"Yest_H4", "Yest_H3", "Yest_H2", "Yest_H1",
	"Yest_L1", "Yest_L2", "Yest_L3", "Yest_L4",
}

// Build assembles the workbook in memory. The caller owns the returned
// file and must Close it.
func (w *ReportWriter) Build(results []scanner.Result, opts ReportOptions) (*excelize.File, error) {
	if opts.TopN <= 0 {
		opts.TopN = defaultTopN
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetMain); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename main sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeMainSheet(f, results); err != nil {
		f.Close()
		return nil, err
	}

	splits := []struct {
		sheet  string
		title  string
		filter func(scanner.Result) bool
	}{
		{sheetNarrow, "Narrow Camarilla", func(r scanner.Result) bool { return r.InsideCamarilla }},
		{sheetInside, "Inside Camarilla", func(r scanner.Result) bool { return r.InsideH4L4 }},
		{sheetHigherValue, "Higher Value Camarilla", func(r scanner.Result) bool { return r.HigherValue }},
		{sheetLowerValue, "Lower Value Camarilla", func(r scanner.Result) bool { return r.LowerValue }},
	}
	for _, s := range splits {
		var matched []scanner.Result
		for _, r := range results {
			if s.filter(r) {
				matched = append(matched, r)
			}
		}
		if err := writeSplitSheet(f, headerStyle, s.sheet, s.title, matched); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := writeTopSheet(f, headerStyle, results, opts.TopN); err != nil {
		f.Close()
		return nil, err
	}

	w.logger.Info("workbook assembled",
		slog.Int("rows", len(results)),
		slog.Int("top_n", opts.TopN))
	return f, nil
}

// Save builds the workbook and writes it to path, creating parent
// directories as needed.
func (w *ReportWriter) Save(results []scanner.Result, opts ReportOptions, path string) error {
	f, err := w.Build(results, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	w.logger.Info("report written", slog.String("path", path))
	return nil
}

func writeMainSheet(f *excelize.File, results []scanner.Result) error {
	header := make([]interface{}, len(mainColumns))
	for i, c := range mainColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetMain, "A1", &header); err != nil {
		return fmt.Errorf("write main header: %w", err)
	}

	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("main sheet row %d: %w", i+2, err)
		}
		row := mainRow(r)
		if err := f.SetSheetRow(sheetMain, cell, &row); err != nil {
			return fmt.Errorf("write main row %d: %w", i+2, err)
		}
	}
	return nil
}

func mainRow(r scanner.Result) []interface{} {
	row := []interface{}{
		r.Symbol, r.Expiry, r.Strike, string(r.Right), r.SpotClose,
		r.Open, r.High, r.Low, r.Close,
		r.InsideCamarilla, r.InsideH4L4, r.HigherValue, r.LowerValue,
		r.OpenInterest, r.OpenInterestChange, r.Volume, r.Trades,
		r.Today.H4, r.Today.H3, r.Today.H2, r.Today.H1,
		r.Today.L1, r.Today.L2, r.Today.L3, r.Today.L4,
	}
	if r.Yesterday != nil {
		y := r.Yesterday
		row = append(row, y.H4, y.H3, y.H2, y.H1, y.L1, y.L2, y.L3, y.L4)
	} else {
		// Blank cells when yesterday had no matching contract.
		for i := 0; i < 8; i++ {
			row = append(row, "")
		}
	}
	return row
}

// writeSplitSheet writes one classification sheet: call rows in columns
// A-C, put rows in D-F, each block under a merged styled header.
func writeSplitSheet(f *excelize.File, headerStyle int, sheet, title string, rows []scanner.Result) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	var calls, puts []scanner.Result
	for _, r := range rows {
		if r.Right == "CE" {
			calls = append(calls, r)
		} else {
			puts = append(puts, r)
		}
	}

	blocks := []struct {
		startCol int
		label    string
		rows     []scanner.Result
	}{
		{1, title + " CE", calls},
		{4, title + " PE", puts},
	}
	for _, b := range blocks {
		if err := writeSplitBlock(f, headerStyle, sheet, b.startCol, b.label, b.rows); err != nil {
			return err
		}
	}
	return nil
}

func writeSplitBlock(f *excelize.File, headerStyle int, sheet string, startCol int, label string, rows []scanner.Result) error {
	first, err := excelize.CoordinatesToCellName(startCol, 1)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(startCol+2, 1)
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheet, first, last); err != nil {
		return fmt.Errorf("merge %s header: %w", sheet, err)
	}
	if err := f.SetCellValue(sheet, first, label); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, first, last, headerStyle); err != nil {
		return err
	}

	head, err := excelize.CoordinatesToCellName(startCol, 2)
	if err != nil {
		return err
	}
	columns := []interface{}{"Symbol", "Spot_Close", "ATM_Strike"}
	if err := f.SetSheetRow(sheet, head, &columns); err != nil {
		return err
	}

	widths := []int{len("Symbol"), len("Spot_Close"), len("ATM_Strike")}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(startCol, i+3)
		if err != nil {
			return err
		}
		row := []interface{}{r.Symbol, r.SpotClose, r.Strike}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
		for j, v := range row {
			if l := len(fmt.Sprint(v)); l > widths[j] {
				widths[j] = l
			}
		}
	}

	return setBlockWidths(f, sheet, startCol, widths)
}

// writeTopSheet writes the Top N sheet: one five-column block per ranking
// metric, laid side by side with a spacer column between blocks.
func writeTopSheet(f *excelize.File, headerStyle int, results []scanner.Result, n int) error {
	sheet := fmt.Sprintf("Top %d Output", n)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	startCol := 1
	for _, metric := range Metrics {
		ranked := TopN(results, metric, n)

		first, err := excelize.CoordinatesToCellName(startCol, 1)
		if err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(startCol+4, 1)
		if err != nil {
			return err
		}
		if err := f.MergeCell(sheet, first, last); err != nil {
			return fmt.Errorf("merge %s title: %w", sheet, err)
		}
		if err := f.SetCellValue(sheet, first, metric.Title(n)); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, first, last, headerStyle); err != nil {
			return err
		}

		head, err := excelize.CoordinatesToCellName(startCol, 2)
		if err != nil {
			return err
		}
		columns := []interface{}{"Symbol", "Option_Type", "ATM_Strike", "Spot_Close", metric.Header()}
		if err := f.SetSheetRow(sheet, head, &columns); err != nil {
			return err
		}

		widths := make([]int, len(columns))
		for j, c := range columns {
			widths[j] = len(fmt.Sprint(c))
		}
		for i, r := range ranked {
			cell, err := excelize.CoordinatesToCellName(startCol, i+3)
			if err != nil {
				return err
			}
			row := []interface{}{r.Symbol, string(r.Right), r.Strike, r.SpotClose, metric.Value(r)}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return err
			}
			for j, v := range row {
				if l := len(fmt.Sprint(v)); l > widths[j] {
					widths[j] = l
				}
			}
		}
		if err := setBlockWidths(f, sheet, startCol, widths); err != nil {
			return err
		}

		startCol += len(columns) + 1
	}
	return nil
}

func setBlockWidths(f *excelize.File, sheet string, startCol int, widths []int) error {
	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(startCol + i)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, float64(w+2)); err != nil {
			return fmt.Errorf("set %s column width: %w", sheet, err)
		}
	}
	return nil
}
