package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/catalog"
	"bookcatalog/internal/config"
	"bookcatalog/internal/document"
	"bookcatalog/internal/platform/database"
)

// pinger is implemented by every repository backend and backs /readyz.
type pinger interface {
	Ping(ctx context.Context) error
}

type repository interface {
	book.Repository
	pinger
}

func main() {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("cannot open %s store: %v", cfg.Backend, err)
	}
	defer closeRepo()

	if cfg.JWTSecret == "" {
		log.Printf("JWT_SECRET is empty: write routes are not protected")
	}

	handler := newServer(ctx, cfg, catalog.NewService(repo), repo)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on %s backend=%s", cfg.Addr, cfg.Backend)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}

func openRepository(ctx context.Context, cfg config.Config) (repository, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		pool, err := database.Open(ctx, cfg.DBDSN, 2*time.Second)
		if err != nil {
			return nil, nil, err
		}
		log.Println("database connection OK")
		return book.NewPostgresRepo(pool, cfg.DBTimeout), pool.Close, nil
	case config.BackendSQLite:
		repo, err := book.OpenSQLiteRepo(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("using sqlite catalog at %s", cfg.SQLitePath)
		return repo, func() { _ = repo.Close() }, nil
	default:
		log.Printf("using xml catalog at %s", cfg.XMLFilePath)
		return book.NewXMLRepo(document.NewFileAccessor(), cfg.XMLFilePath), func() {}, nil
	}
}
