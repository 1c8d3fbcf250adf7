// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-petr/pet-finance/internal/domain"
)

// DefaultCurrency is used when an account is created without one.
const DefaultCurrency = "USD"

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, userID int64, arg domain.AccountParams) (domain.Account, error)
	List(ctx context.Context, arg domain.ListAccountsParams) ([]domain.Account, error)
	Get(ctx context.Context, userID, id int64) (domain.Account, error)
	Update(ctx context.Context, userID, id int64, arg domain.AccountParams) (bool, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
	Reconcile(ctx context.Context, userID, accountID int64) (domain.ReconcileResult, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

func withDefaults(arg domain.AccountParams) domain.AccountParams {
	if arg.Balance == "" {
		arg.Balance = "0.00"
	}

	if arg.Currency == "" {
		arg.Currency = DefaultCurrency
	}

	return arg
}

// Create creates and returns account of the given user.
func (s *Service) Create(ctx context.Context, userID int64, arg domain.AccountParams) (domain.Account, error) {
	return s.repo.Create(ctx, userID, withDefaults(arg))
}

// List returns accounts that are owned by the given user.
func (s *Service) List(ctx context.Context, arg domain.ListAccountsParams) ([]domain.Account, error) {
	return s.repo.List(ctx, arg)
}

// Get returns the user's account with the given id.
func (s *Service) Get(ctx context.Context, userID, id int64) (domain.Account, error) {
	return s.repo.Get(ctx, userID, id)
}

// Update replaces the fields of the user's account.
func (s *Service) Update(ctx context.Context, userID, id int64, arg domain.AccountParams) error {
	ok, err := s.repo.Update(ctx, userID, id, withDefaults(arg))
	if err != nil {
		return err
	}

	if !ok {
		return domain.ErrAccountNotFound
	}

	return nil
}

// Delete removes the user's account.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	ok, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}

	if !ok {
		return domain.ErrAccountNotFound
	}

	return nil
}

// Reconcile applies the account's net flow to its credit cards.
func (s *Service) Reconcile(ctx context.Context, userID, accountID int64) (domain.ReconcileResult, error) {
	return s.repo.Reconcile(ctx, userID, accountID)
}
