package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bookcatalog/internal/catalog"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
)

// newServer wires routes and middleware. ctx bounds background work such as
// rate limiter cleanup.
func newServer(ctx context.Context, cfg config.Config, svc *catalog.Service, ready pinger) http.Handler {
	books := catalog.NewHTTPHandler(svc)

	limiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.RunCleanup(ctx)

	router := chi.NewRouter()
	router.Use(httpx.RequestIDMiddleware)
	router.Use(middleware.RealIP)
	router.Use(httpx.AccessLogMiddleware)
	router.Use(httpx.RecoveryMiddleware)
	router.Use(httpx.SecurityHeadersMiddleware(cfg.EnableHSTS))
	router.Use(httpx.CORSMiddleware(cfg.AllowedOrigins))
	router.Use(limiter.Middleware)
	router.Use(httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := ready.Ping(pingCtx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/books", func(r chi.Router) {
		r.Get("/", books.List)
		r.Get("/report", books.Report)
		r.Get("/{isbn}", books.GetByISBN)

		r.Group(func(r chi.Router) {
			r.Use(httpx.RequireRole(cfg.JWTSecret, httpx.RoleAdmin))
			r.Post("/", books.Create)
			r.Put("/", books.Update)
			r.Delete("/{isbn}", books.Delete)
		})
	})

	return router
}
