package accountservice

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/go-petr/pet-finance/pkg/randompkg"
)

func randomAccount(userID int64) domain.Account {
	return domain.Account{
		ID:       randompkg.IntBetween(1, 1000),
		UserID:   userID,
		Name:     randompkg.String(8),
		Type:     "checking",
		Balance:  randompkg.MoneyAmountBetween(100, 1000),
		Currency: randompkg.Currency(),
	}
}

func TestCreate(t *testing.T) {
	t.Parallel()

	userID := randompkg.IntBetween(1, 1000)
	account := randomAccount(userID)

	testCases := []struct {
		name       string
		arg        domain.AccountParams
		buildStubs func(repo *MockRepo)
		wantError  error
	}{
		{
			name: "OK",
			arg:  domain.AccountParams{Name: account.Name, Type: account.Type, Balance: account.Balance, Currency: account.Currency},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), userID, domain.AccountParams{
						Name: account.Name, Type: account.Type, Balance: account.Balance, Currency: account.Currency,
					}).
					Times(1).
					Return(account, nil)
			},
		},
		{
			name: "Defaults",
			arg:  domain.AccountParams{Name: account.Name},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), userID, domain.AccountParams{
						Name: account.Name, Balance: "0.00", Currency: DefaultCurrency,
					}).
					Times(1).
					Return(account, nil)
			},
		},
		{
			name: "RepoError",
			arg:  domain.AccountParams{Name: account.Name},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), userID, gomock.Any()).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			wantError: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			got, err := New(repo).Create(context.Background(), userID, tc.arg)
			if !errors.Is(err, tc.wantError) {
				t.Fatalf("Create() got error %v, want %v", err, tc.wantError)
			}

			if tc.wantError != nil {
				return
			}

			if diff := cmp.Diff(account, got); diff != "" {
				t.Errorf("Create() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdateAndDeleteNotFound(t *testing.T) {
	t.Parallel()

	userID := randompkg.IntBetween(1, 1000)
	id := randompkg.IntBetween(1, 1000)

	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo)
		call       func(s *Service) error
		wantError  error
	}{
		{
			name: "UpdateOK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Update(gomock.Any(), userID, id, gomock.Any()).Times(1).Return(true, nil)
			},
			call: func(s *Service) error {
				return s.Update(context.Background(), userID, id, domain.AccountParams{Name: "x"})
			},
		},
		{
			name: "UpdateNotOwned",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Update(gomock.Any(), userID, id, gomock.Any()).Times(1).Return(false, nil)
			},
			call: func(s *Service) error {
				return s.Update(context.Background(), userID, id, domain.AccountParams{Name: "x"})
			},
			wantError: domain.ErrAccountNotFound,
		},
		{
			name: "DeleteOK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Delete(gomock.Any(), userID, id).Times(1).Return(true, nil)
			},
			call: func(s *Service) error {
				return s.Delete(context.Background(), userID, id)
			},
		},
		{
			name: "DeleteNotOwned",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Delete(gomock.Any(), userID, id).Times(1).Return(false, nil)
			},
			call: func(s *Service) error {
				return s.Delete(context.Background(), userID, id)
			},
			wantError: domain.ErrAccountNotFound,
		},
		{
			name: "DeleteWithDependents",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Delete(gomock.Any(), userID, id).Times(1).Return(false, domain.ErrAccountHasDependents)
			},
			call: func(s *Service) error {
				return s.Delete(context.Background(), userID, id)
			},
			wantError: domain.ErrAccountHasDependents,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			if err := tc.call(New(repo)); !errors.Is(err, tc.wantError) {
				t.Errorf("got error %v, want %v", err, tc.wantError)
			}
		})
	}
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	userID := randompkg.IntBetween(1, 1000)
	accountID := randompkg.IntBetween(1, 1000)

	want := domain.ReconcileResult{
		UpdatedBalances: map[int64]string{7: "1300.00"},
		MoneyIn:         "500.00",
		MoneyOut:        "200.00",
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().Reconcile(gomock.Any(), userID, accountID).Times(1).Return(want, nil)

	got, err := New(repo).Reconcile(context.Background(), userID, accountID)
	if err != nil {
		t.Fatalf("Reconcile() returned error: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reconcile() mismatch (-want +got):\n%s", diff)
	}
}
