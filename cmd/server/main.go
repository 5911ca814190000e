package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/tvdberg/wijnproef/internal/middleware"
	"github.com/tvdberg/wijnproef/internal/service"
	"github.com/tvdberg/wijnproef/internal/storage"
	"github.com/tvdberg/wijnproef/internal/storage/csvfile"
	"github.com/tvdberg/wijnproef/internal/storage/sqlite"
	"github.com/tvdberg/wijnproef/pkg/logging"
	"github.com/tvdberg/wijnproef/pkg/metrics"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// openStore picks the storage backend from STORE_BACKEND. The CSV
// backend is the default and matches the flat files the tasting has
// always lived in; sqlite keeps everything in one database file.
func openStore() (storage.Store, error) {
	switch backend := getEnv("STORE_BACKEND", "csv"); backend {
	case "csv":
		return csvfile.New(
			getEnv("WINE_FILE", "mijn_wijnen.csv"),
			getEnv("ORDER_FILE", "huidige_proeverij.csv"),
		)
	case "sqlite":
		return sqlite.New(getEnv("DB_PATH", "./data/proeverij.db"))
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (want csv or sqlite)", backend)
	}
}

func main() {
	_ = godotenv.Load()
	logging.Setup()

	store, err := openStore()
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	tasting, err := service.NewTasting(context.Background(), store)
	if err != nil {
		slog.Error("Failed to load tasting session", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	service.NewHandler(tasting).Register(mux)
	mux.Handle("/metrics", metrics.Handler())

	// Serve the three-tab UI for everything else.
	staticDir, err := filepath.Abs(getEnv("STATIC_PATH", "./web/static"))
	if err != nil {
		slog.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	slog.Info("Serving static files", "path", staticDir)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}
		http.ServeFile(w, r, filepath.Join(staticDir, filepath.Clean(urlPath)))
	})

	m := metrics.NewServerMetrics()
	handler := middleware.Logging(middleware.CORS(middleware.Metrics(m, mux)))

	// Wrap with h2c for HTTP/2 without TLS.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := ":" + getEnv("PORT", "8080")
	srv := &http.Server{Addr: addr, Handler: h2cHandler}

	go func() {
		slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
