package book

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mattn/go-sqlite3"

	"bookcatalog/internal/entity"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS books (
	seq      INTEGER PRIMARY KEY AUTOINCREMENT,
	isbn     TEXT NOT NULL UNIQUE,
	title    TEXT NOT NULL,
	authors  TEXT NOT NULL,
	category TEXT NOT NULL,
	year     INTEGER NOT NULL,
	price    TEXT NOT NULL
)`

const selectSQLiteBookColumns = `SELECT isbn, title, authors, category, year, price FROM books`

// SQLiteRepo keeps books in a single-file SQLite database. Authors are
// stored as a JSON array and prices as decimal text.
type SQLiteRepo struct {
	mu sync.RWMutex
	db *sql.DB
}

// OpenSQLiteRepo opens (creating if needed) the database at path.
func OpenSQLiteRepo(path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteRepo{db: db}, nil
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteBook(row rowScanner) (entity.Book, error) {
	var (
		b       entity.Book
		authors string
		price   string
	)
	if err := row.Scan(&b.ISBN, &b.Title, &authors, &b.Category, &b.Year, &price); err != nil {
		return entity.Book{}, err
	}
	if err := json.Unmarshal([]byte(authors), &b.Authors); err != nil {
		return entity.Book{}, transcodeErr("authors", "invalid authors value: '%s'", authors)
	}
	p, err := parsePrice(price)
	if err != nil {
		return entity.Book{}, transcodeErr(TagPrice, "invalid price value: '%s'", price)
	}
	b.Price = p
	return b, nil
}

func encodeAuthors(authors []string) (string, error) {
	raw, err := json.Marshal(authors)
	return string(raw), err
}

func (r *SQLiteRepo) List(ctx context.Context) ([]entity.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx, selectSQLiteBookColumns+` ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Book{}
	for rows.Next() {
		b, err := scanSQLiteBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) GetByISBN(ctx context.Context, isbn string) (entity.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, err := scanSQLiteBook(r.db.QueryRowContext(ctx, selectSQLiteBookColumns+` WHERE isbn = ?`, isbn))
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Book{}, fmt.Errorf("%w: could not find book by isbn: %s", ErrNotFound, isbn)
	}
	return b, err
}

func (r *SQLiteRepo) Create(ctx context.Context, b *entity.Book) error {
	if err := Validate(b); err != nil {
		return err
	}
	authors, err := encodeAuthors(b.Authors)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO books (isbn, title, authors, category, year, price) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ISBN, b.Title, authors, b.Category, b.Year, FormatPrice(b.Price),
	)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: book with same isbn: %s already exists", ErrAlreadyExists, b.ISBN)
	}
	return err
}

func (r *SQLiteRepo) Update(ctx context.Context, patch *entity.Book) (entity.Book, error) {
	if patch == nil {
		return entity.Book{}, invalidArgument("book cannot be null")
	}
	if strings.TrimSpace(patch.ISBN) == "" {
		return entity.Book{}, invalidArgument("isbn cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return entity.Book{}, err
	}
	defer tx.Rollback()

	base, err := scanSQLiteBook(tx.QueryRowContext(ctx, selectSQLiteBookColumns+` WHERE isbn = ?`, patch.ISBN))
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Book{}, fmt.Errorf("%w: isbn: %s", ErrNotFound, patch.ISBN)
	}
	if err != nil {
		return entity.Book{}, err
	}

	merged := Merge(base, *patch)
	if err := Validate(&merged); err != nil {
		return entity.Book{}, err
	}
	authors, err := encodeAuthors(merged.Authors)
	if err != nil {
		return entity.Book{}, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE books SET title = ?, authors = ?, category = ?, year = ?, price = ? WHERE isbn = ?`,
		merged.Title, authors, merged.Category, merged.Year, FormatPrice(merged.Price), merged.ISBN,
	); err != nil {
		return entity.Book{}, err
	}
	if err := tx.Commit(); err != nil {
		return entity.Book{}, err
	}
	return merged, nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, isbn string) error {
	if strings.TrimSpace(isbn) == "" {
		return invalidArgument("isbn cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE isbn = ?`, isbn)
	if err != nil {
		return err
	}
	return requireAffected(res, isbn)
}

func requireAffected(res sql.Result, isbn string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: isbn: %s", ErrNotFound, isbn)
	}
	return nil
}

func (r *SQLiteRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
