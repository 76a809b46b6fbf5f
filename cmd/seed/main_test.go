package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/book"
	"bookcatalog/internal/document"
)

func TestSeed_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "books.xml")
	require.NoError(t, prepareDocument(path, false))
	repo := book.NewXMLRepo(document.NewFileAccessor(), path)

	created, skipped, err := seed(ctx, repo, sampleBooks())
	require.NoError(t, err)
	assert.Equal(t, len(sampleBooks()), created)
	assert.Zero(t, skipped)

	require.NoError(t, prepareDocument(path, false))
	created, skipped, err = seed(ctx, repo, sampleBooks())
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Equal(t, len(sampleBooks()), skipped)

	books, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleBooks(), books)
}

func TestPrepareDocument_Force(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "books.xml")
	require.NoError(t, prepareDocument(path, false))
	repo := book.NewXMLRepo(document.NewFileAccessor(), path)
	_, _, err := seed(ctx, repo, sampleBooks()[:1])
	require.NoError(t, err)

	require.NoError(t, prepareDocument(path, true))
	books, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestSeed_SQLite(t *testing.T) {
	ctx := context.Background()
	repo, err := book.OpenSQLiteRepo(filepath.Join(t.TempDir(), "books.db"))
	require.NoError(t, err)
	defer repo.Close()

	created, _, err := seed(ctx, repo, sampleBooks())
	require.NoError(t, err)
	assert.Equal(t, len(sampleBooks()), created)

	books, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleBooks(), books)
}
