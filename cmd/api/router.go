package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"coursecatalog/internal/app"
	"coursecatalog/internal/catalog"
	"coursecatalog/internal/config"
	"coursecatalog/internal/httpx"
	"coursecatalog/internal/ingest"
)

const maxRequestBytes = 1 << 20

func newRouter(a *app.App, cfg config.ServerConfig, logger *slog.Logger) http.Handler {
	catalogHandler := catalog.NewHTTPHandler(a.Catalog)
	syncHandler := ingest.NewHTTPHandler(a.Ingest, cfg.InternalSecret)
	syncLimiter := httpx.NewRateLimitMiddleware(0.2, 2, cfg.TrustProxyHeaders)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := a.Ready(ctx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Handle("POST /internal/jobs/sync", syncLimiter.Middleware(http.HandlerFunc(syncHandler.Sync)))

	router.HandleFunc("GET /catalog/term", catalogHandler.LatestTerm)
	router.HandleFunc("GET /catalog/subjects", catalogHandler.Subjects)
	router.HandleFunc("GET /catalog/subjects/{subject}", catalogHandler.Subject)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware,
		httpx.RequestSizeLimitMiddleware(maxRequestBytes),
	)
}
