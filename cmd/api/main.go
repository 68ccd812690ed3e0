package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/billed-app/billed-web/internal/api"
	"github.com/billed-app/billed-web/internal/config"
	"github.com/billed-app/billed-web/internal/middleware"
	"github.com/billed-app/billed-web/internal/storage/files"
	"github.com/billed-app/billed-web/internal/storage/sqlite"
	"github.com/billed-app/billed-web/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	backend, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer backend.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	disk, err := files.NewDiskStore(cfg.UploadDir)
	if err != nil {
		slog.Error("Failed to initialize upload directory", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	api.NewHandler(backend, disk, cfg.APIBaseURL).Register(mux)

	registry := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(registry, "billed_api")
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	handler := middleware.Logging(middleware.CORS(metrics.Wrap(mux)))

	// h2c keeps HTTP/2 available without TLS for in-cluster callers.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	slog.Info("Bills API starting", "address", cfg.APIAddr)
	if err := http.ListenAndServe(cfg.APIAddr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
