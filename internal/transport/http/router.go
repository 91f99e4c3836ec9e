package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"camscan/internal/config"
	"camscan/internal/exporter"
	custommw "camscan/internal/middleware"
	"camscan/internal/scanner"
)

// NewRouter assembles the middleware chain and mounts all API routes.
func NewRouter(cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(logger))
	r.Use(custommw.Recoverer(logger))

	limiter := custommw.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, logger)
	r.Use(limiter.Handler)

	scan := NewScanHandler(
		scanner.NewAnalyzer(logger),
		exporter.NewReportWriter(logger),
		logger,
		cfg.Server.MaxUploadBytes,
		cfg.Report.TopN,
	)
	health := NewHealthHandler()

	r.Route("/api", func(api chi.Router) {
		scan.RegisterRoutes(api)
		health.RegisterRoutes(api)
	})

	return r
}
