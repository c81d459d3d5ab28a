package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookshelf/internal/repository/memory"
)

func newUserService(t *testing.T) UserService {
	t.Helper()
	store := memory.NewStore(nil)
	return NewUserService(memory.NewUserRepository(store), bcrypt.MinCost)
}

func TestUserService_RegisterThenAuthenticate(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.Equal(t, int64(1), registered.ID)
	require.Empty(t, registered.PasswordHash, "register must not leak the hash")

	authed, err := svc.Authenticate(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.Equal(t, registered.ID, authed.ID)
}

func TestUserService_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "pw2")
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestUserService_AuthenticateFailsUniformly(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	// Unknown user and wrong password yield the identical error.
	_, err = svc.Authenticate(ctx, "nobody", "pw1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_ConcurrentRegistrationSingleWinner(t *testing.T) {
	t.Parallel()

	svc := newUserService(t)
	ctx := context.Background()

	const attempts = 16
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, "alice", "pw1")
		}(i)
	}
	wg.Wait()

	var succeeded, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrUserAlreadyExists)
			duplicates++
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, attempts-1, duplicates)
}
