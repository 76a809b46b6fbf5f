package book

import (
	"context"

	"github.com/beevik/etree"

	"bookcatalog/internal/entity"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks bookcatalog/internal/book Repository

// Repository defines the contract for book storage backends.
type Repository interface {
	// List returns every book in storage order.
	List(ctx context.Context) ([]entity.Book, error)
	// GetByISBN returns the first book whose isbn matches.
	GetByISBN(ctx context.Context, isbn string) (entity.Book, error)
	// Create stores a new book; the isbn must not exist yet.
	Create(ctx context.Context, b *entity.Book) error
	// Update merges patch into the stored book with the same isbn and
	// returns the merged record.
	Update(ctx context.Context, patch *entity.Book) (entity.Book, error)
	// Delete removes the book with the given isbn.
	Delete(ctx context.Context, isbn string) error
}

// DocumentAccessor loads and saves the XML document behind XMLRepo.
type DocumentAccessor interface {
	Load(location string) (*etree.Document, error)
	Save(doc *etree.Document, location string) error
}
