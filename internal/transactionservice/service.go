// Package transactionservice manages business logic layer of transactions.
package transactionservice

import (
	"context"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/ownership"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Create(ctx context.Context, arg domain.TransactionParams) (domain.Transaction, error)
	List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error)
	Summary(ctx context.Context, userID int64, dates domain.DateRange) ([]domain.DailyTotal, error)
	Get(ctx context.Context, userID, id int64) (domain.Transaction, error)
	Update(ctx context.Context, userID, id int64, arg domain.TransactionParams) (bool, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo       Repo
	authorizer ownership.Authorizer
}

// New returns transaction service.
func New(r Repo, a ownership.Authorizer) *Service {
	return &Service{
		repo:       r,
		authorizer: a,
	}
}

// authorize checks the account and fills a missing currency with the account's one.
func (s *Service) authorize(ctx context.Context, userID int64, arg domain.TransactionParams) (domain.TransactionParams, error) {
	account, err := s.authorizer.Authorize(ctx, userID, arg.AccountID)
	if err != nil {
		return arg, err
	}

	if arg.Currency == "" {
		arg.Currency = account.Currency
	}

	return arg, nil
}

// Create records a transaction on an account of the user.
func (s *Service) Create(ctx context.Context, userID int64, arg domain.TransactionParams) (domain.Transaction, error) {
	arg, err := s.authorize(ctx, userID, arg)
	if err != nil {
		return domain.Transaction{}, err
	}

	return s.repo.Create(ctx, arg)
}

// List returns the user's transactions.
func (s *Service) List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error) {
	return s.repo.List(ctx, arg)
}

// Summary returns the user's transaction totals per date.
func (s *Service) Summary(ctx context.Context, userID int64, dates domain.DateRange) ([]domain.DailyTotal, error) {
	return s.repo.Summary(ctx, userID, dates)
}

// Get returns the user's transaction with the given id.
func (s *Service) Get(ctx context.Context, userID, id int64) (domain.Transaction, error) {
	return s.repo.Get(ctx, userID, id)
}

// Update replaces the fields of the user's transaction.
func (s *Service) Update(ctx context.Context, userID, id int64, arg domain.TransactionParams) error {
	arg, err := s.authorize(ctx, userID, arg)
	if err != nil {
		return err
	}

	ok, err := s.repo.Update(ctx, userID, id, arg)
	if err != nil {
		return err
	}

	if !ok {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes the user's transaction.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	ok, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}

	if !ok {
		return domain.ErrTransactionNotFound
	}

	return nil
}
