package memory

import (
	"context"
	"time"

	"bookshelf/internal/domain"
	"bookshelf/internal/repository"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) repository.UserRepository {
	return &UserRepository{store: store}
}

// Create assigns the next sequential id and inserts the user. The uniqueness
// check and the insert happen under one write lock, so two concurrent
// registrations of the same username cannot both succeed.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usersByName[user.Username]; ok {
		return 0, repository.ErrUserExists
	}

	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = time.Now().UTC()

	stored := *user
	s.usersByName[stored.Username] = &stored
	s.usersByID[stored.ID] = &stored
	return stored.ID, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByName[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	out := *user
	return &out, nil
}
