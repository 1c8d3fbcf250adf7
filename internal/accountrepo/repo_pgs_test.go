//go:build integration

package accountrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/test"
	"github.com/go-petr/pet-finance/pkg/randompkg"
)

func createRandomAccount(t *testing.T, repo *RepoPGS, userID int64) domain.Account {
	arg := domain.AccountParams{
		Name:     randompkg.String(10),
		Type:     "savings",
		Balance:  randompkg.MoneyAmountBetween(1_000, 10_000),
		Currency: randompkg.Currency(),
	}

	account, err := repo.Create(context.Background(), userID, arg)
	require.NoError(t, err)

	require.NotZero(t, account.ID)
	require.Equal(t, userID, account.UserID)
	require.Equal(t, arg.Name, account.Name)
	require.Equal(t, arg.Type, account.Type)
	require.Equal(t, arg.Balance, account.Balance)
	require.Equal(t, arg.Currency, account.Currency)

	return account
}

func TestCreate(t *testing.T) {
	tx := test.SetupTX(t)
	user := test.SeedUser(t, tx)

	createRandomAccount(t, NewTxRepoPGS(tx), user.ID)
}

func TestCreateOwnerNotFound(t *testing.T) {
	tx := test.SetupTX(t)

	_, err := NewTxRepoPGS(tx).Create(context.Background(), -1, domain.AccountParams{
		Name:     "ghost",
		Balance:  "0.00",
		Currency: "USD",
	})
	require.ErrorIs(t, err, domain.ErrOwnerNotFound)
}

func TestGet(t *testing.T) {
	tx := test.SetupTX(t)
	repo := NewTxRepoPGS(tx)

	owner := test.SeedUser(t, tx)
	stranger := test.SeedUser(t, tx)
	want := createRandomAccount(t, repo, owner.ID)

	got, err := repo.Get(context.Background(), owner.ID, want.ID)
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = repo.Get(context.Background(), stranger.ID, want.ID)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestList(t *testing.T) {
	tx := test.SetupTX(t)
	repo := NewTxRepoPGS(tx)
	ctx := context.Background()

	owner := test.SeedUser(t, tx)
	stranger := test.SeedUser(t, tx)

	wallet, err := repo.Create(ctx, owner.ID, domain.AccountParams{Name: "Daily Wallet", Type: "cash", Balance: "10.00", Currency: "USD"})
	require.NoError(t, err)

	savings, err := repo.Create(ctx, owner.ID, domain.AccountParams{Name: "Rainy_Day", Type: "savings", Balance: "20.00", Currency: "USD"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, stranger.ID, domain.AccountParams{Name: "Daily Wallet", Type: "cash", Balance: "30.00", Currency: "USD"})
	require.NoError(t, err)

	page := domain.Page{Limit: domain.DefaultLimit}

	testCases := []struct {
		name string
		arg  domain.ListAccountsParams
		want []domain.Account
	}{
		{
			name: "AllNewestFirst",
			arg:  domain.ListAccountsParams{UserID: owner.ID, Page: page},
			want: []domain.Account{savings, wallet},
		},
		{
			name: "ByType",
			arg:  domain.ListAccountsParams{UserID: owner.ID, Type: "cash", Page: page},
			want: []domain.Account{wallet},
		},
		{
			name: "SearchIgnoresCase",
			arg:  domain.ListAccountsParams{UserID: owner.ID, Search: "wALLet", Page: page},
			want: []domain.Account{wallet},
		},
		{
			name: "SearchMatchesType",
			arg:  domain.ListAccountsParams{UserID: owner.ID, Search: "saving", Page: page},
			want: []domain.Account{savings},
		},
		{
			name: "SearchUnderscoreIsLiteral",
			arg:  domain.ListAccountsParams{UserID: owner.ID, Search: "y_D", Page: page},
			want: []domain.Account{savings},
		},
		{
			name: "SearchPercentIsLiteral",
			arg:  domain.ListAccountsParams{UserID: owner.ID, Search: "%", Page: page},
			want: []domain.Account{},
		},
		{
			name: "Offset",
			arg:  domain.ListAccountsParams{UserID: owner.ID, Page: domain.Page{Limit: 1, Offset: 1}},
			want: []domain.Account{wallet},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.List(ctx, tc.arg)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestUpdate(t *testing.T) {
	tx := test.SetupTX(t)
	repo := NewTxRepoPGS(tx)
	ctx := context.Background()

	owner := test.SeedUser(t, tx)
	stranger := test.SeedUser(t, tx)
	account := createRandomAccount(t, repo, owner.ID)

	arg := domain.AccountParams{Name: "renamed", Type: "checking", Balance: "42.50", Currency: "EUR"}

	ok, err := repo.Update(ctx, stranger.ID, account.ID, arg)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = repo.Update(ctx, owner.ID, account.ID, arg)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := repo.Get(ctx, owner.ID, account.ID)
	require.NoError(t, err)
	require.Equal(t, domain.Account{
		ID:       account.ID,
		UserID:   owner.ID,
		Name:     arg.Name,
		Type:     arg.Type,
		Balance:  arg.Balance,
		Currency: arg.Currency,
	}, got)
}

func TestDelete(t *testing.T) {
	tx := test.SetupTX(t)
	repo := NewTxRepoPGS(tx)
	ctx := context.Background()

	owner := test.SeedUser(t, tx)
	stranger := test.SeedUser(t, tx)
	account := createRandomAccount(t, repo, owner.ID)

	ok, err := repo.Delete(ctx, stranger.ID, account.ID)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = repo.Delete(ctx, owner.ID, account.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = repo.Get(ctx, owner.ID, account.ID)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestDeleteWithDependents(t *testing.T) {
	tx := test.SetupTX(t)

	owner := test.SeedUser(t, tx)
	account := test.SeedAccount(t, tx, owner.ID, "100.00")
	test.SeedTransaction(t, tx, account.ID, "10.00", test.Date(2024, 1, 5))

	ok, err := NewTxRepoPGS(tx).Delete(context.Background(), owner.ID, account.ID)
	require.ErrorIs(t, err, domain.ErrAccountHasDependents)
	require.False(t, ok)
}

func TestReconcile(t *testing.T) {
	tx := test.SetupTX(t)
	repo := NewTxRepoPGS(tx)
	ctx := context.Background()

	owner := test.SeedUser(t, tx)
	account := test.SeedAccount(t, tx, owner.ID, "0.00")
	card := test.SeedCreditCard(t, tx, account.ID, "1000.00")
	test.SeedIncome(t, tx, account.ID, "500.00", test.Date(2024, 2, 1))
	test.SeedTransaction(t, tx, account.ID, "200.00", test.Date(2024, 2, 3))

	got, err := repo.Reconcile(ctx, owner.ID, account.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ReconcileResult{
		UpdatedBalances: map[int64]string{card.ID: "1300.00"},
		MoneyIn:         "500.00",
		MoneyOut:        "200.00",
	}, got)

	var stored string
	err = tx.QueryRowContext(ctx, `SELECT balance FROM credit_cards WHERE id = $1`, card.ID).Scan(&stored)
	require.NoError(t, err)
	require.Equal(t, "1300.00", stored)
}

func TestReconcileWithoutActivity(t *testing.T) {
	tx := test.SetupTX(t)

	owner := test.SeedUser(t, tx)
	account := test.SeedAccount(t, tx, owner.ID, "0.00")
	card := test.SeedCreditCard(t, tx, account.ID, "75.10")

	got, err := NewTxRepoPGS(tx).Reconcile(context.Background(), owner.ID, account.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ReconcileResult{
		UpdatedBalances: map[int64]string{card.ID: "75.10"},
		MoneyIn:         "0.00",
		MoneyOut:        "0.00",
	}, got)
}

func TestReconcileForeignAccount(t *testing.T) {
	tx := test.SetupTX(t)

	owner := test.SeedUser(t, tx)
	stranger := test.SeedUser(t, tx)
	account := test.SeedAccount(t, tx, owner.ID, "0.00")

	_, err := NewTxRepoPGS(tx).Reconcile(context.Background(), stranger.ID, account.ID)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}
