package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/billed-app/billed-web/internal/config"
	"github.com/billed-app/billed-web/internal/middleware"
	"github.com/billed-app/billed-web/internal/session"
	"github.com/billed-app/billed-web/internal/storage"
	"github.com/billed-app/billed-web/internal/storage/httpstore"
	"github.com/billed-app/billed-web/internal/web"
	"github.com/billed-app/billed-web/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.SessionSecret == "" {
		slog.Error("SESSION_SECRET is required")
		os.Exit(1)
	}

	sessions := session.NewCookieStore(session.NewJWTManager(cfg.SessionSecret, cfg.SessionTTL))
	newStore := func(email string) storage.BillStore {
		return httpstore.New(cfg.APIBaseURL, email, nil)
	}

	app := web.NewApp(sessions, newStore)

	mux := http.NewServeMux()
	mux.Handle("/", app.Handler())

	registry := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(registry, "billed_web")
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	handler := middleware.Logging(metrics.Wrap(mux))
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	slog.Info("Employee web client starting", "address", cfg.WebAddr, "bills_api", cfg.APIBaseURL)
	if err := http.ListenAndServe(cfg.WebAddr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
