package repository

import "errors"

var (
	// ErrUserExists is returned when creating a user whose username is taken.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when a user lookup matches nothing.
	ErrUserNotFound = errors.New("user not found")
	// ErrBookNotFound is returned when an ISBN is not in the catalog.
	ErrBookNotFound = errors.New("book not found")
	// ErrReviewNotFound is returned when the caller has no review to act on.
	ErrReviewNotFound = errors.New("review not found")
)
