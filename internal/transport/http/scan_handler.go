package http

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"

	"camscan/internal/bhavcopy"
	apierrors "camscan/internal/errors"
	"camscan/internal/exporter"
	"camscan/internal/scanner"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// dateRe extracts the 8-digit trade date embedded in bhav copy filenames.
var dateRe = regexp.MustCompile(`\d{8}`)

// ScanHandler handles scan upload requests
type ScanHandler struct {
	analyzer     *scanner.Analyzer
	writer       *exporter.ReportWriter
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler

	maxUploadBytes int64
	defaultTopN    int
}

// NewScanHandler creates a new scan handler
func NewScanHandler(analyzer *scanner.Analyzer, writer *exporter.ReportWriter, logger *slog.Logger, maxUploadBytes int64, defaultTopN int) *ScanHandler {
	return &ScanHandler{
		analyzer:       analyzer,
		writer:         writer,
		logger:         logger,
		errorHandler:   apierrors.NewErrorHandler(logger, false),
		maxUploadBytes: maxUploadBytes,
		defaultTopN:    defaultTopN,
	}
}

// RegisterRoutes registers the scan routes
func (h *ScanHandler) RegisterRoutes(r chi.Router) {
	r.Post("/scan", h.Scan)
}

// Scan accepts a multipart form with "today" and "yesterday" ZIP archives
// plus an optional "top" field, runs the day-pair analysis and responds
// with the report workbook as an attachment.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	topN := h.defaultTopN
	if v := r.FormValue("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusBadRequest, "INVALID_PARAMETER",
				"top must be a positive integer", v))
			return
		}
		topN = n
	}

	today, todayName, err := h.loadSnapshot(r, "today")
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	yesterday, _, err := h.loadSnapshot(r, "yesterday")
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	results, err := h.analyzer.Analyze(ctx, today, yesterday)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if len(results) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.ErrNoResults)
		return
	}

	f, err := h.writer.Build(results, exporter.ReportOptions{TopN: topN})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer f.Close()

	filename := reportFilename(todayName)
	h.logger.InfoContext(ctx, "scan report ready",
		slog.String("filename", filename),
		slog.Int("results", len(results)),
		slog.Int("top_n", topN))

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		// Headers are gone; all we can do is log the broken download.
		h.logger.ErrorContext(ctx, "failed to stream workbook",
			slog.String("error", err.Error()))
	}
}

// loadSnapshot reads one uploaded archive part into a snapshot.
func (h *ScanHandler) loadSnapshot(r *http.Request, part string) (*bhavcopy.Snapshot, string, error) {
	file, header, err := r.FormFile(part)
	if err != nil {
		return nil, "", apierrors.NewWithDetails(
			http.StatusBadRequest, "MISSING_PARAMETER",
			fmt.Sprintf("%s archive is required", part), err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", apierrors.InvalidRequestWithError(err)
	}

	snap, err := bhavcopy.LoadReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, "", apierrors.SnapshotLoadError(part, err)
	}
	return snap, header.Filename, nil
}

// reportFilename derives the download name from today's upload filename,
// falling back to a generic name when no trade date is embedded.
func reportFilename(todayName string) string {
	date := "Report"
	if m := dateRe.FindString(todayName); m != "" {
		date = m
	}
	return fmt.Sprintf("Camarilla Scanner %s.xlsx", date)
}
