package service

import (
	"context"
	"errors"
	"strings"

	"bookshelf/internal/repository"
)

// ErrNoReviews is returned by ListReviews when the book is unknown or has no
// reviews collection. A book that never received a review is reported the
// same way as a missing book; only a book whose collection was allocated and
// later emptied lists as an empty map.
var ErrNoReviews = errors.New("book not found or no reviews available")

// ReviewService is the guarded review ledger. Every mutation takes the user
// id the auth middleware resolved from the verified token; handlers never
// pass a client-supplied id, which is what scopes users to their own review.
type ReviewService interface {
	AddReview(ctx context.Context, isbn string, userID int64, text string) error
	ModifyReview(ctx context.Context, isbn string, userID int64, text string) error
	DeleteReview(ctx context.Context, isbn string, userID int64) error
	ListReviews(ctx context.Context, isbn string) (map[int64]string, error)
}

type reviewService struct {
	books repository.BookRepository
}

func NewReviewService(books repository.BookRepository) ReviewService {
	return &reviewService{books: books}
}

// AddReview creates the user's review or overwrites an existing one; adding
// twice never duplicates.
func (s *reviewService) AddReview(ctx context.Context, isbn string, userID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("review text is required")
	}
	return s.books.PutReview(ctx, isbn, userID, text)
}

func (s *reviewService) ModifyReview(ctx context.Context, isbn string, userID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("review text is required")
	}
	return s.books.UpdateReview(ctx, isbn, userID, text)
}

func (s *reviewService) DeleteReview(ctx context.Context, isbn string, userID int64) error {
	return s.books.DeleteReview(ctx, isbn, userID)
}

func (s *reviewService) ListReviews(ctx context.Context, isbn string) (map[int64]string, error) {
	reviews, err := s.books.Reviews(ctx, isbn)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, ErrNoReviews
		}
		return nil, err
	}
	if reviews == nil {
		return nil, ErrNoReviews
	}
	return reviews, nil
}
