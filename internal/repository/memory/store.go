// Package memory implements the repositories over a single process-wide
// in-memory store. The service keeps no state outside this process.
package memory

import (
	"sync"

	"bookshelf/internal/domain"
)

// Store owns all mutable state shared between requests: the user table and
// the catalog with embedded reviews. One RWMutex serializes every
// read-modify-write sequence; readers take the read lock and receive copies,
// so no caller ever holds a reference into guarded state.
type Store struct {
	mu sync.RWMutex

	usersByName map[string]*domain.User
	usersByID   map[int64]*domain.User
	nextUserID  int64

	books map[string]*domain.Book
	// isbns preserves seed order for catalog listing.
	isbns []string
}

// NewStore builds a store seeded with the given catalog. Seed books are
// copied in; review maps keep their nil / empty distinction.
func NewStore(seed []domain.Book) *Store {
	s := &Store{
		usersByName: make(map[string]*domain.User),
		usersByID:   make(map[int64]*domain.User),
		books:       make(map[string]*domain.Book, len(seed)),
	}
	for i := range seed {
		b := seed[i]
		b.Reviews = seed[i].CloneReviews()
		if _, ok := s.books[b.ISBN]; ok {
			continue
		}
		s.books[b.ISBN] = &b
		s.isbns = append(s.isbns, b.ISBN)
	}
	return s
}

// snapshotBook copies a book with its reviews map. Caller must hold at least
// the read lock.
func snapshotBook(b *domain.Book) domain.Book {
	out := *b
	out.Reviews = b.CloneReviews()
	return out
}
