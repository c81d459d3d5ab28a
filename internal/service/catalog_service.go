package service

import (
	"context"
	"errors"

	"bookshelf/internal/domain"
	"bookshelf/internal/repository"
)

// CatalogService exposes read-only catalog queries. Author and title lookups
// are exact, case-sensitive matches.
type CatalogService interface {
	ListBooks(ctx context.Context) ([]domain.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	FindByAuthor(ctx context.Context, author string) ([]domain.Book, error)
	FindByTitle(ctx context.Context, title string) ([]domain.Book, error)
}

type catalogService struct {
	books repository.BookRepository
}

func NewCatalogService(books repository.BookRepository) CatalogService {
	return &catalogService{books: books}
}

func (s *catalogService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	return s.books.All(ctx)
}

func (s *catalogService) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	if isbn == "" {
		return nil, errors.New("isbn is required")
	}
	return s.books.GetByISBN(ctx, isbn)
}

func (s *catalogService) FindByAuthor(ctx context.Context, author string) ([]domain.Book, error) {
	return s.books.FindByAuthor(ctx, author)
}

func (s *catalogService) FindByTitle(ctx context.Context, title string) ([]domain.Book, error) {
	return s.books.FindByTitle(ctx, title)
}
