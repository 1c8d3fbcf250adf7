package installmentservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/ownership"
)

func TestCreate(t *testing.T) {
	t.Parallel()

	arg := domain.InstallmentParams{
		AccountID:         3,
		TotalAmount:       "1200.00",
		InstallmentAmount: "100.00",
		StartDate:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	}
	want := domain.Installment{
		ID:                6,
		AccountID:         arg.AccountID,
		TotalAmount:       arg.TotalAmount,
		InstallmentAmount: arg.InstallmentAmount,
		StartDate:         arg.StartDate,
		EndDate:           arg.EndDate,
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	authorizer := ownership.NewMockAuthorizer(ctrl)

	gomock.InOrder(
		authorizer.EXPECT().Authorize(gomock.Any(), int64(1), int64(3)).Times(1),
		repo.EXPECT().Create(gomock.Any(), arg).Times(1).Return(want, nil),
	)

	got, err := New(repo, authorizer).Create(context.Background(), 1, arg)
	if err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Create() mismatch (-want +got):\n%s", diff)
	}
}

func TestOwnershipErrors(t *testing.T) {
	t.Parallel()

	arg := domain.InstallmentParams{AccountID: 3}

	testCases := []struct {
		name       string
		call       func(s *Service) error
		buildStubs func(repo *MockRepo, authorizer *ownership.MockAuthorizer)
		wantError  error
	}{
		{
			name: "CreateForeignAccount",
			call: func(s *Service) error {
				_, err := s.Create(context.Background(), 1, arg)
				return err
			},
			buildStubs: func(repo *MockRepo, authorizer *ownership.MockAuthorizer) {
				authorizer.EXPECT().
					Authorize(gomock.Any(), int64(1), int64(3)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrAccountNotFound,
		},
		{
			name: "GetForeign",
			call: func(s *Service) error {
				_, err := s.Get(context.Background(), 1, 6)
				return err
			},
			buildStubs: func(repo *MockRepo, authorizer *ownership.MockAuthorizer) {
				repo.EXPECT().Get(gomock.Any(), int64(1), int64(6)).Times(1).
					Return(domain.Installment{}, domain.ErrInstallmentNotFound)
			},
			wantError: domain.ErrInstallmentNotFound,
		},
		{
			name: "UpdateNotOwned",
			call: func(s *Service) error { return s.Update(context.Background(), 1, 6, arg) },
			buildStubs: func(repo *MockRepo, authorizer *ownership.MockAuthorizer) {
				authorizer.EXPECT().Authorize(gomock.Any(), int64(1), int64(3)).Times(1)
				repo.EXPECT().Update(gomock.Any(), int64(1), int64(6), arg).Times(1).Return(false, nil)
			},
			wantError: domain.ErrInstallmentNotFound,
		},
		{
			name: "DeleteNotOwned",
			call: func(s *Service) error { return s.Delete(context.Background(), 1, 6) },
			buildStubs: func(repo *MockRepo, authorizer *ownership.MockAuthorizer) {
				repo.EXPECT().Delete(gomock.Any(), int64(1), int64(6)).Times(1).Return(false, nil)
			},
			wantError: domain.ErrInstallmentNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			authorizer := ownership.NewMockAuthorizer(ctrl)
			tc.buildStubs(repo, authorizer)

			if err := tc.call(New(repo, authorizer)); !errors.Is(err, tc.wantError) {
				t.Errorf("got error %v, want %v", err, tc.wantError)
			}
		})
	}
}
