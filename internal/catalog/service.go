// Package catalog is the single surface the request layer talks to: book
// storage plus report rendering.
package catalog

import (
	"context"
	"fmt"

	"bookcatalog/internal/book"
	"bookcatalog/internal/entity"
	"bookcatalog/internal/report"
)

type Service struct {
	repo book.Repository
}

func NewService(repo book.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]entity.Book, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByISBN(ctx context.Context, isbn string) (entity.Book, error) {
	return s.repo.GetByISBN(ctx, isbn)
}

func (s *Service) Create(ctx context.Context, b *entity.Book) error {
	return s.repo.Create(ctx, b)
}

func (s *Service) Update(ctx context.Context, patch *entity.Book) (entity.Book, error) {
	return s.repo.Update(ctx, patch)
}

func (s *Service) Delete(ctx context.Context, isbn string) error {
	return s.repo.Delete(ctx, isbn)
}

// Report renders every stored book in the named format. The format is
// checked before storage is touched.
func (s *Service) Report(ctx context.Context, formatName string) (report.Report, error) {
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return report.Report{}, err
	}
	books, err := s.repo.List(ctx)
	if err != nil {
		return report.Report{}, fmt.Errorf("list books for report: %w", err)
	}
	return report.Render(format, books)
}
