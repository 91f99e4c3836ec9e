package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"camscan/internal/bhavcopy"
	"camscan/internal/config"
	"camscan/internal/exporter"
	"camscan/internal/infrastructure"
	"camscan/internal/scanner"
)

var dateRe = regexp.MustCompile(`\d{8}`)

func main() {
	todayPath := flag.String("today", "", "path to today's bhav copy ZIP (required)")
	yesterdayPath := flag.String("yesterday", "", "path to yesterday's bhav copy ZIP (required)")
	out := flag.String("out", "", "output xlsx path (defaults to '<reports dir>/Camarilla Scanner <date>.xlsx')")
	topN := flag.Int("top", 0, "rows per Top-N block (defaults to configured value)")
	flag.Parse()

	if *todayPath == "" || *yesterdayPath == "" {
		fmt.Fprintln(os.Stderr, "usage: scanner -today <zip> -yesterday <zip> [-out <xlsx>] [-top N]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *topN <= 0 {
		*topN = cfg.Report.TopN
	}
	if *out == "" {
		*out = filepath.Join(cfg.Report.OutputDir, reportName(*todayPath))
	}

	logger.Info("Starting Camarilla scan",
		slog.String("today", *todayPath),
		slog.String("yesterday", *yesterdayPath),
		slog.String("out", *out),
		slog.Int("top_n", *topN))

	start := time.Now()

	today, err := bhavcopy.Load(*todayPath)
	if err != nil {
		logger.Error("Could not load today's data", "path", *todayPath, "error", err)
		os.Exit(1)
	}
	yesterday, err := bhavcopy.Load(*yesterdayPath)
	if err != nil {
		logger.Error("Could not load yesterday's data", "path", *yesterdayPath, "error", err)
		os.Exit(1)
	}

	analyzer := scanner.NewAnalyzer(logger)
	results, err := analyzer.Analyze(context.Background(), today, yesterday)
	if err != nil {
		logger.Error("Scan failed", "error", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		logger.Error("No results produced",
			"hint", "check that both archives cover the same contract universe")
		os.Exit(1)
	}

	writer := exporter.NewReportWriter(logger)
	if err := writer.Save(results, exporter.ReportOptions{TopN: *topN}, *out); err != nil {
		logger.Error("Failed to write report", "path", *out, "error", err)
		os.Exit(1)
	}

	logger.Info("Scan complete",
		slog.Int("results", len(results)),
		slog.String("report", *out),
		slog.String("duration", time.Since(start).String()))
}

// reportName derives the output filename from the 8-digit trade date in
// today's archive name, matching the report the upload UI produces.
func reportName(todayPath string) string {
	date := "Report"
	if m := dateRe.FindString(filepath.Base(todayPath)); m != "" {
		date = m
	}
	return fmt.Sprintf("Camarilla Scanner %s.xlsx", date)
}
