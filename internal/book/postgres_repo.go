package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"bookcatalog/internal/entity"
)

// PostgresRepo stores books in the books table created by db/migrations.
// Storage order is insertion order (the seq column).
type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// price is read as text so the stored digits and scale come back unchanged.
const selectBookColumns = `SELECT isbn, title, authors, category, year, price::text FROM books`

func scanBook(row pgx.Row) (entity.Book, error) {
	var (
		b     entity.Book
		price string
	)
	if err := row.Scan(&b.ISBN, &b.Title, &b.Authors, &b.Category, &b.Year, &price); err != nil {
		return entity.Book{}, err
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return entity.Book{}, transcodeErr(TagPrice, "invalid price value: '%s'", price)
	}
	b.Price = p
	return b, nil
}

// toNumeric maps a price onto a NUMERIC parameter without going through
// floating point.
func toNumeric(p decimal.Decimal) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(FormatPrice(p)); err != nil {
		return pgtype.Numeric{}, fmt.Errorf("convert price %s: %w", p, err)
	}
	return n, nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]entity.Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, selectBookColumns+` ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetByISBN(ctx context.Context, isbn string) (entity.Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	b, err := scanBook(r.db.QueryRow(timeoutCtx, selectBookColumns+` WHERE isbn = $1`, isbn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, fmt.Errorf("%w: could not find book by isbn: %s", ErrNotFound, isbn)
		}
		return entity.Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Create(ctx context.Context, b *entity.Book) error {
	if err := Validate(b); err != nil {
		return err
	}

	const sql = `
		INSERT INTO books (isbn, title, authors, category, year, price)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (isbn) DO NOTHING`

	price, err := toNumeric(b.Price)
	if err != nil {
		return err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, sql, b.ISBN, b.Title, b.Authors, b.Category, b.Year, price)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: book with same isbn: %s already exists", ErrAlreadyExists, b.ISBN)
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, patch *entity.Book) (entity.Book, error) {
	if patch == nil {
		return entity.Book{}, invalidArgument("book cannot be null")
	}
	if strings.TrimSpace(patch.ISBN) == "" {
		return entity.Book{}, invalidArgument("isbn cannot be empty")
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var merged entity.Book
	err := pgx.BeginFunc(timeoutCtx, r.db, func(tx pgx.Tx) error {
		base, err := scanBook(tx.QueryRow(timeoutCtx, selectBookColumns+` WHERE isbn = $1 FOR UPDATE`, patch.ISBN))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: isbn: %s", ErrNotFound, patch.ISBN)
			}
			return err
		}

		merged = Merge(base, *patch)
		if err := Validate(&merged); err != nil {
			return err
		}
		price, err := toNumeric(merged.Price)
		if err != nil {
			return err
		}

		_, err = tx.Exec(timeoutCtx, `
			UPDATE books
			SET title = $2, authors = $3, category = $4, year = $5, price = $6, updated_at = NOW()
			WHERE isbn = $1`,
			merged.ISBN, merged.Title, merged.Authors, merged.Category, merged.Year, price,
		)
		return err
	})
	if err != nil {
		return entity.Book{}, err
	}
	return merged, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, isbn string) error {
	if strings.TrimSpace(isbn) == "" {
		return invalidArgument("isbn cannot be empty")
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM books WHERE isbn = $1`, isbn)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: isbn: %s", ErrNotFound, isbn)
	}
	return nil
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
