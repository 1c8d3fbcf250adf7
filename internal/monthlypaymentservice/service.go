// Package monthlypaymentservice manages business logic layer of monthly payments.
package monthlypaymentservice

import (
	"context"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/ownership"
)

// Repo provides data access layer interface needed by monthly payment service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package monthlypaymentservice
type Repo interface {
	Create(ctx context.Context, arg domain.MonthlyPaymentParams) (domain.MonthlyPayment, error)
	List(ctx context.Context, arg domain.ListMonthlyPaymentsParams) ([]domain.MonthlyPayment, error)
	Get(ctx context.Context, userID, id int64) (domain.MonthlyPayment, error)
	Update(ctx context.Context, userID, id int64, arg domain.MonthlyPaymentParams) (bool, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

// Service facilitates monthly payment service layer logic.
type Service struct {
	repo       Repo
	authorizer ownership.Authorizer
}

// New returns monthly payment service.
func New(r Repo, a ownership.Authorizer) *Service {
	return &Service{
		repo:       r,
		authorizer: a,
	}
}

// Create creates a monthly payment on an account of the user.
func (s *Service) Create(ctx context.Context, userID int64, arg domain.MonthlyPaymentParams) (domain.MonthlyPayment, error) {
	if _, err := s.authorizer.Authorize(ctx, userID, arg.AccountID); err != nil {
		return domain.MonthlyPayment{}, err
	}

	return s.repo.Create(ctx, arg)
}

// List returns the user's monthly payments.
func (s *Service) List(ctx context.Context, arg domain.ListMonthlyPaymentsParams) ([]domain.MonthlyPayment, error) {
	return s.repo.List(ctx, arg)
}

// Get returns the user's monthly payment with the given id.
func (s *Service) Get(ctx context.Context, userID, id int64) (domain.MonthlyPayment, error) {
	return s.repo.Get(ctx, userID, id)
}

// Update replaces the fields of the user's monthly payment.
func (s *Service) Update(ctx context.Context, userID, id int64, arg domain.MonthlyPaymentParams) error {
	if _, err := s.authorizer.Authorize(ctx, userID, arg.AccountID); err != nil {
		return err
	}

	ok, err := s.repo.Update(ctx, userID, id, arg)
	if err != nil {
		return err
	}

	if !ok {
		return domain.ErrMonthlyPaymentNotFound
	}

	return nil
}

// Delete removes the user's monthly payment.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	ok, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}

	if !ok {
		return domain.ErrMonthlyPaymentNotFound
	}

	return nil
}
