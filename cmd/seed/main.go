package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/document"
	"bookcatalog/internal/entity"
	"bookcatalog/internal/platform/database"
)

func main() {
	force := flag.Bool("force", false, "Replace an existing XML catalog")
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()

	var repo book.Repository
	switch cfg.Backend {
	case config.BackendPostgres:
		pool, err := database.Open(ctx, cfg.DBDSN, 2*time.Second)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()
		repo = book.NewPostgresRepo(pool, cfg.DBTimeout)
	case config.BackendSQLite:
		sqliteRepo, err := book.OpenSQLiteRepo(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("cannot open %s: %v", cfg.SQLitePath, err)
		}
		defer sqliteRepo.Close()
		repo = sqliteRepo
	default:
		if err := prepareDocument(cfg.XMLFilePath, *force); err != nil {
			log.Fatalf("cannot prepare %s: %v", cfg.XMLFilePath, err)
		}
		repo = book.NewXMLRepo(document.NewFileAccessor(), cfg.XMLFilePath)
	}

	created, skipped, err := seed(ctx, repo, sampleBooks())
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("seed done: backend=%s created=%d skipped=%d", cfg.Backend, created, skipped)
}

// prepareDocument writes an empty catalog unless one already exists.
func prepareDocument(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return document.NewFileAccessor().Save(document.New("bookstore"), path)
}

// seed creates every book that is not stored yet.
func seed(ctx context.Context, repo book.Repository, books []entity.Book) (created, skipped int, err error) {
	for i := range books {
		err := repo.Create(ctx, &books[i])
		switch {
		case err == nil:
			created++
		case errors.Is(err, book.ErrAlreadyExists):
			skipped++
		default:
			return created, skipped, fmt.Errorf("create %s: %w", books[i].ISBN, err)
		}
	}
	return created, skipped, nil
}

func sampleBooks() []entity.Book {
	return []entity.Book{
		{ISBN: "978-0-7360-3567-4", Title: "Everyday Italian", Authors: []string{"Giada De Laurentiis"}, Category: "cooking", Year: 2005, Price: decimal.RequireFromString("30.00")},
		{ISBN: "978-0-7475-3269-9", Title: "Harry Potter", Authors: []string{"J K. Rowling"}, Category: "children", Year: 2005, Price: decimal.RequireFromString("29.99")},
		{ISBN: "978-0-596-00420-0", Title: "XQuery Kick Start", Authors: []string{"James McGovern", "Per Bothner", "Kurt Cagle", "James Linn", "Vaidyanathan Nagarajan"}, Category: "web", Year: 2003, Price: decimal.RequireFromString("49.99")},
		{ISBN: "978-0-596-00292-3", Title: "Learning XML", Authors: []string{"Erik T. Ray"}, Category: "web", Year: 2003, Price: decimal.RequireFromString("39.95")},
		{ISBN: "978-0-13-110362-7", Title: "The C Programming Language", Authors: []string{"Brian W. Kernighan", "Dennis M. Ritchie"}, Category: "programming", Year: 1988, Price: decimal.RequireFromString("67.50")},
	}
}
