//go:build integration

package transactionrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/test"
)

func TestCreateGetUpdateDelete(t *testing.T) {
	tx := test.SetupTX(t)
	repo := NewRepoPGS(tx)
	ctx := context.Background()

	owner := test.SeedUser(t, tx)
	stranger := test.SeedUser(t, tx)
	account := test.SeedAccount(t, tx, owner.ID, "0.00")

	arg := domain.TransactionParams{
		AccountID:   account.ID,
		Amount:      "42.10",
		Date:        test.Date(2024, 5, 1),
		Description: "weekly shop",
		Category:    "groceries",
		Currency:    "EUR",
	}

	tr, err := repo.Create(ctx, arg)
	require.NoError(t, err)
	require.NotZero(t, tr.ID)
	require.Equal(t, "42.10", tr.Amount)
	require.Equal(t, "EUR", tr.Currency)

	got, err := repo.Get(ctx, owner.ID, tr.ID)
	require.NoError(t, err)
	require.Equal(t, tr, got)

	_, err = repo.Get(ctx, stranger.ID, tr.ID)
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)

	arg.Amount = "40.00"

	ok, err := repo.Update(ctx, stranger.ID, tr.ID, arg)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = repo.Update(ctx, owner.ID, tr.ID, arg)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.Delete(ctx, stranger.ID, tr.ID)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = repo.Delete(ctx, owner.ID, tr.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = repo.Get(ctx, owner.ID, tr.ID)
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestListDateRange(t *testing.T) {
	tx := test.SetupTX(t)
	repo := NewRepoPGS(tx)
	ctx := context.Background()

	owner := test.SeedUser(t, tx)
	account := test.SeedAccount(t, tx, owner.ID, "0.00")

	test.SeedTransaction(t, tx, account.ID, "10.00", test.Date(2024, 1, 1))
	feb := test.SeedTransaction(t, tx, account.ID, "20.00", test.Date(2024, 2, 1))
	test.SeedTransaction(t, tx, account.ID, "30.00", test.Date(2024, 3, 1))

	got, err := repo.List(ctx, domain.ListTransactionsParams{
		UserID:    owner.ID,
		DateRange: domain.DateRange{From: test.Date(2024, 1, 15), To: test.Date(2024, 2, 15)},
		Page:      domain.Page{Limit: domain.DefaultLimit},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, feb.ID, got[0].ID)
}

func TestListPagination(t *testing.T) {
	tx := test.SetupTX(t)
	repo := NewRepoPGS(tx)
	ctx := context.Background()

	owner := test.SeedUser(t, tx)
	account := test.SeedAccount(t, tx, owner.ID, "0.00")

	want := make(map[int64]bool)
	for day := 1; day <= 5; day++ {
		tr := test.SeedTransaction(t, tx, account.ID, "1.00", test.Date(2024, 1, day))
		want[tr.ID] = true
	}

	first, err := repo.List(ctx, domain.ListTransactionsParams{UserID: owner.ID, Page: domain.Page{Limit: 3}})
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := repo.List(ctx, domain.ListTransactionsParams{UserID: owner.ID, Page: domain.Page{Limit: 3, Offset: 3}})
	require.NoError(t, err)
	require.Len(t, second, 2)

	seen := make(map[int64]bool)
	for _, tr := range append(first, second...) {
		require.False(t, seen[tr.ID], "transaction %d returned on both pages", tr.ID)
		seen[tr.ID] = true
	}

	require.Equal(t, want, seen)
	require.True(t, first[0].Date.Equal(test.Date(2024, 1, 5)))
}

func TestListFilters(t *testing.T) {
	tx := test.SetupTX(t)
	repo := NewRepoPGS(tx)
	ctx := context.Background()

	owner := test.SeedUser(t, tx)
	stranger := test.SeedUser(t, tx)
	account := test.SeedAccount(t, tx, owner.ID, "0.00")
	foreign := test.SeedAccount(t, tx, stranger.ID, "0.00")

	mine := test.SeedTransaction(t, tx, account.ID, "5.00", test.Date(2024, 1, 1))
	test.SeedTransaction(t, tx, foreign.ID, "5.00", test.Date(2024, 1, 1))

	page := domain.Page{Limit: domain.DefaultLimit}

	got, err := repo.List(ctx, domain.ListTransactionsParams{UserID: owner.ID, Page: page})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, mine.ID, got[0].ID)

	got, err = repo.List(ctx, domain.ListTransactionsParams{UserID: owner.ID, AccountID: foreign.ID, Page: page})
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = repo.List(ctx, domain.ListTransactionsParams{UserID: owner.ID, Category: "rent", Page: page})
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = repo.List(ctx, domain.ListTransactionsParams{UserID: owner.ID, Search: "GROC", Page: page})
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = repo.List(ctx, domain.ListTransactionsParams{UserID: owner.ID, Search: "%", Page: page})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSummary(t *testing.T) {
	tx := test.SetupTX(t)
	repo := NewRepoPGS(tx)
	ctx := context.Background()

	owner := test.SeedUser(t, tx)
	stranger := test.SeedUser(t, tx)
	first := test.SeedAccount(t, tx, owner.ID, "0.00")
	second := test.SeedAccount(t, tx, owner.ID, "0.00")
	foreign := test.SeedAccount(t, tx, stranger.ID, "0.00")

	test.SeedTransaction(t, tx, first.ID, "10.00", test.Date(2024, 1, 2))
	test.SeedTransaction(t, tx, second.ID, "2.50", test.Date(2024, 1, 2))
	test.SeedTransaction(t, tx, first.ID, "7.00", test.Date(2024, 1, 1))
	test.SeedTransaction(t, tx, first.ID, "1.00", test.Date(2024, 1, 9))
	test.SeedTransaction(t, tx, foreign.ID, "100.00", test.Date(2024, 1, 1))

	got, err := repo.Summary(ctx, owner.ID, domain.DateRange{To: test.Date(2024, 1, 5)})
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.True(t, got[0].Date.Equal(test.Date(2024, 1, 1)))
	require.Equal(t, "7.00", got[0].Amount)
	require.True(t, got[1].Date.Equal(test.Date(2024, 1, 2)))
	require.Equal(t, "12.50", got[1].Amount)
}
