//go:build integration

package installmentrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/test"
)

func createInstallment(t *testing.T, repo *RepoPGS, accountID int64, start, end time.Time, description string) domain.Installment {
	t.Helper()

	i, err := repo.Create(context.Background(), domain.InstallmentParams{
		AccountID:         accountID,
		TotalAmount:       "1200.00",
		InstallmentAmount: "100.00",
		StartDate:         start,
		EndDate:           end,
		Description:       description,
	})
	require.NoError(t, err)

	return i
}

func TestCreateGetUpdateDelete(t *testing.T) {
	tx := test.SetupTX(t)
	repo := NewRepoPGS(tx)
	ctx := context.Background()

	owner := test.SeedUser(t, tx)
	stranger := test.SeedUser(t, tx)
	account := test.SeedAccount(t, tx, owner.ID, "0.00")

	i := createInstallment(t, repo, account.ID, test.Date(2024, 1, 1), test.Date(2024, 12, 1), "laptop")
	require.NotZero(t, i.ID)
	require.Equal(t, "1200.00", i.TotalAmount)
	require.Equal(t, "100.00", i.InstallmentAmount)

	got, err := repo.Get(ctx, owner.ID, i.ID)
	require.NoError(t, err)
	require.Equal(t, i, got)

	_, err = repo.Get(ctx, stranger.ID, i.ID)
	require.ErrorIs(t, err, domain.ErrInstallmentNotFound)

	update := domain.InstallmentParams{
		AccountID:         account.ID,
		TotalAmount:       "600.00",
		InstallmentAmount: "50.00",
		StartDate:         test.Date(2024, 1, 1),
		EndDate:           test.Date(2024, 12, 1),
		Description:       "phone",
	}

	ok, err := repo.Update(ctx, stranger.ID, i.ID, update)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = repo.Update(ctx, owner.ID, i.ID, update)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.Delete(ctx, owner.ID, i.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = repo.Get(ctx, owner.ID, i.ID)
	require.ErrorIs(t, err, domain.ErrInstallmentNotFound)
}

func TestList(t *testing.T) {
	tx := test.SetupTX(t)
	repo := NewRepoPGS(tx)
	ctx := context.Background()

	owner := test.SeedUser(t, tx)
	stranger := test.SeedUser(t, tx)
	account := test.SeedAccount(t, tx, owner.ID, "0.00")
	foreign := test.SeedAccount(t, tx, stranger.ID, "0.00")

	early := createInstallment(t, repo, account.ID, test.Date(2024, 1, 1), test.Date(2024, 6, 1), "sofa")
	late := createInstallment(t, repo, account.ID, test.Date(2024, 3, 1), test.Date(2025, 3, 1), "car 50%")
	createInstallment(t, repo, foreign.ID, test.Date(2024, 3, 1), test.Date(2024, 4, 1), "sofa")

	page := domain.Page{Limit: domain.DefaultLimit}

	got, err := repo.List(ctx, domain.ListInstallmentsParams{UserID: owner.ID, Page: page})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, late.ID, got[0].ID)
	require.Equal(t, early.ID, got[1].ID)

	got, err = repo.List(ctx, domain.ListInstallmentsParams{
		UserID:    owner.ID,
		DateRange: domain.DateRange{From: test.Date(2024, 1, 1), To: test.Date(2024, 12, 31)},
		Page:      page,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, early.ID, got[0].ID)

	got, err = repo.List(ctx, domain.ListInstallmentsParams{
		UserID:    owner.ID,
		DateRange: domain.DateRange{From: test.Date(2024, 2, 1)},
		Page:      page,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, late.ID, got[0].ID)

	got, err = repo.List(ctx, domain.ListInstallmentsParams{UserID: owner.ID, Search: "50%", Page: page})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, late.ID, got[0].ID)
}
