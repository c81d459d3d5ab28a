package repository

import (
	"context"

	"bookshelf/internal/domain"
)

// BookRepository defines catalog queries and guarded review mutation.
// Returned books are copies; callers never share references into the store.
type BookRepository interface {
	All(ctx context.Context) ([]domain.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	FindByAuthor(ctx context.Context, author string) ([]domain.Book, error)
	FindByTitle(ctx context.Context, title string) ([]domain.Book, error)

	// Reviews returns a copy of the book's reviews map. The map is nil when
	// the book has no reviews collection, which is distinct from an
	// allocated empty map.
	Reviews(ctx context.Context, isbn string) (map[int64]string, error)

	// PutReview creates or overwrites the user's review on the book.
	PutReview(ctx context.Context, isbn string, userID int64, text string) error
	// UpdateReview overwrites an existing review and fails with
	// ErrReviewNotFound when the user has none on the book.
	UpdateReview(ctx context.Context, isbn string, userID int64, text string) error
	// DeleteReview removes the user's review. A missing book and a missing
	// review both yield ErrReviewNotFound.
	DeleteReview(ctx context.Context, isbn string, userID int64) error
}
