package memory

import (
	"context"

	"bookshelf/internal/domain"
	"bookshelf/internal/repository"
)

type BookRepository struct {
	store *Store
}

func NewBookRepository(store *Store) repository.BookRepository {
	return &BookRepository{store: store}
}

func (r *BookRepository) All(ctx context.Context) ([]domain.Book, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Book, 0, len(s.isbns))
	for _, isbn := range s.isbns {
		out = append(out, snapshotBook(s.books[isbn]))
	}
	return out, nil
}

func (r *BookRepository) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[isbn]
	if !ok {
		return nil, repository.ErrBookNotFound
	}
	out := snapshotBook(book)
	return &out, nil
}

func (r *BookRepository) FindByAuthor(ctx context.Context, author string) ([]domain.Book, error) {
	return r.filter(func(b *domain.Book) bool { return b.Author == author })
}

func (r *BookRepository) FindByTitle(ctx context.Context, title string) ([]domain.Book, error) {
	return r.filter(func(b *domain.Book) bool { return b.Title == title })
}

func (r *BookRepository) filter(match func(*domain.Book) bool) ([]domain.Book, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Book
	for _, isbn := range s.isbns {
		if b := s.books[isbn]; match(b) {
			out = append(out, snapshotBook(b))
		}
	}
	return out, nil
}

func (r *BookRepository) Reviews(ctx context.Context, isbn string) (map[int64]string, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[isbn]
	if !ok {
		return nil, repository.ErrBookNotFound
	}
	return book.CloneReviews(), nil
}

// PutReview upserts: a second write by the same user overwrites rather than
// duplicates. The reviews map is allocated on first write.
func (r *BookRepository) PutReview(ctx context.Context, isbn string, userID int64, text string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[isbn]
	if !ok {
		return repository.ErrBookNotFound
	}
	if book.Reviews == nil {
		book.Reviews = make(map[int64]string)
	}
	book.Reviews[userID] = text
	return nil
}

func (r *BookRepository) UpdateReview(ctx context.Context, isbn string, userID int64, text string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[isbn]
	if !ok {
		return repository.ErrBookNotFound
	}
	if _, ok := book.Reviews[userID]; !ok {
		return repository.ErrReviewNotFound
	}
	book.Reviews[userID] = text
	return nil
}

func (r *BookRepository) DeleteReview(ctx context.Context, isbn string, userID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[isbn]
	if !ok {
		return repository.ErrReviewNotFound
	}
	if _, ok := book.Reviews[userID]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(book.Reviews, userID)
	return nil
}
