package book

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/entity"
)

func newSQLiteRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := OpenSQLiteRepo(filepath.Join(t.TempDir(), "db", "books.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSQLiteRepo(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	books, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	b := validBook()
	require.NoError(t, repo.Create(ctx, &b))

	t.Run("create conflict keeps one copy", func(t *testing.T) {
		assert.ErrorIs(t, repo.Create(ctx, &b), ErrAlreadyExists)
		books, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, books, 1)
	})

	t.Run("create validates", func(t *testing.T) {
		bad := validBook()
		bad.ISBN = "222"
		bad.Year = 0
		assert.ErrorIs(t, repo.Create(ctx, &bad), ErrValidation)
	})

	t.Run("get", func(t *testing.T) {
		got, err := repo.GetByISBN(ctx, "111")
		require.NoError(t, err)
		assert.Equal(t, b, got)

		_, err = repo.GetByISBN(ctx, "999")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update falls back on unset fields", func(t *testing.T) {
		got, err := repo.Update(ctx, &entity.Book{ISBN: "111", Price: entity.UnsetPrice})
		require.NoError(t, err)
		assert.Equal(t, b, got)

		got, err = repo.Update(ctx, &entity.Book{ISBN: "111", Title: "B", Price: dec("5.0")})
		require.NoError(t, err)
		assert.Equal(t, entity.Book{ISBN: "111", Title: "B", Authors: []string{"X"}, Category: "C", Year: 2000, Price: dec("5.0")}, got)

		stored, err := repo.GetByISBN(ctx, "111")
		require.NoError(t, err)
		assert.Equal(t, got, stored)
	})

	t.Run("update arguments", func(t *testing.T) {
		_, err := repo.Update(ctx, nil)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		_, err = repo.Update(ctx, &entity.Book{ISBN: " "})
		assert.ErrorIs(t, err, ErrInvalidArgument)
		_, err = repo.Update(ctx, &entity.Book{ISBN: "999"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		second := validBook()
		second.ISBN = "000"
		second.Authors = []string{"Y", "Z"}
		require.NoError(t, repo.Create(ctx, &second))

		books, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "111", books[0].ISBN)
		assert.Equal(t, []string{"Y", "Z"}, books[1].Authors)
	})

	t.Run("prices are stored exactly", func(t *testing.T) {
		exact := validBook()
		exact.ISBN = "333"
		exact.Price = dec("12345678901234567.89")
		require.NoError(t, repo.Create(ctx, &exact))

		got, err := repo.GetByISBN(ctx, "333")
		require.NoError(t, err)
		assert.Equal(t, "12345678901234567.89", FormatPrice(got.Price))

		got, err = repo.Update(ctx, &entity.Book{ISBN: "333", Price: dec("30.00")})
		require.NoError(t, err)
		stored, err := repo.GetByISBN(ctx, "333")
		require.NoError(t, err)
		assert.Equal(t, got, stored)
		assert.Equal(t, "30.00", FormatPrice(stored.Price))

		require.NoError(t, repo.Delete(ctx, "333"))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "000"))
		assert.ErrorIs(t, repo.Delete(ctx, "000"), ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, ""), ErrInvalidArgument)
	})

	assert.NoError(t, repo.Ping(ctx))
}

type stubResult struct {
	n   int64
	err error
}

func (r stubResult) LastInsertId() (int64, error) { return 0, nil }
func (r stubResult) RowsAffected() (int64, error) { return r.n, r.err }

func TestRequireAffected(t *testing.T) {
	assert.NoError(t, requireAffected(stubResult{n: 1}, "111"))
	assert.ErrorIs(t, requireAffected(stubResult{}, "111"), ErrNotFound)

	driverErr := errors.New("rows affected not supported")
	err := requireAffected(stubResult{err: driverErr}, "111")
	require.ErrorIs(t, err, driverErr)
	assert.NotErrorIs(t, err, ErrNotFound)
}
