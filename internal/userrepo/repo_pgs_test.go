//go:build integration

package userrepo

import (
	"context"
	"testing"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/test"
	"github.com/go-petr/pet-finance/pkg/passpkg"
	"github.com/go-petr/pet-finance/pkg/randompkg"
	"github.com/stretchr/testify/require"
)

func createRandomUser(t *testing.T, repo *RepoPGS) domain.User {
	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	require.NoError(t, err)

	arg := domain.CreateUserParams{
		Username:     randompkg.Owner(),
		Email:        randompkg.Email(),
		PasswordHash: hashedPassword,
	}

	user, err := repo.Create(context.Background(), arg)
	require.NoError(t, err)

	require.NotZero(t, user.ID)
	require.Equal(t, arg.Username, user.Username)
	require.Equal(t, arg.Email, user.Email)
	require.Equal(t, arg.PasswordHash, user.PasswordHash)
	require.NotZero(t, user.CreatedAt)

	return user
}

func TestCreate(t *testing.T) {
	tx := test.SetupTX(t)
	createRandomUser(t, NewRepoPGS(tx))
}

func TestCreateUniqueViolation(t *testing.T) {
	testCases := []struct {
		name      string
		buildArg  func(existing domain.User) domain.CreateUserParams
		wantError error
	}{
		{
			name: "ErrUsernameAlreadyExists",
			buildArg: func(existing domain.User) domain.CreateUserParams {
				return domain.CreateUserParams{
					Username:     existing.Username,
					Email:        randompkg.Email(),
					PasswordHash: existing.PasswordHash,
				}
			},
			wantError: domain.ErrUsernameAlreadyExists,
		},
		{
			name: "ErrEmailAlreadyExists",
			buildArg: func(existing domain.User) domain.CreateUserParams {
				return domain.CreateUserParams{
					Username:     randompkg.Owner(),
					Email:        existing.Email,
					PasswordHash: existing.PasswordHash,
				}
			},
			wantError: domain.ErrEmailAlreadyExists,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			// a failed statement aborts the transaction, so every case gets its own
			tx := test.SetupTX(t)
			repo := NewRepoPGS(tx)

			existing := createRandomUser(t, repo)

			got, err := repo.Create(context.Background(), tc.buildArg(existing))
			require.ErrorIs(t, err, tc.wantError)
			require.Empty(t, got)
		})
	}
}

func TestGet(t *testing.T) {
	tx := test.SetupTX(t)
	repo := NewRepoPGS(tx)

	want := createRandomUser(t, repo)

	got, err := repo.Get(context.Background(), want.Username)
	require.NoError(t, err)
	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.Username, got.Username)
	require.Equal(t, want.Email, got.Email)
	require.Equal(t, want.PasswordHash, got.PasswordHash)
	require.WithinDuration(t, want.CreatedAt, got.CreatedAt, 0)
}

func TestGetNotFound(t *testing.T) {
	tx := test.SetupTX(t)

	got, err := NewRepoPGS(tx).Get(context.Background(), "missing"+randompkg.String(8))
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	require.Empty(t, got)
}
