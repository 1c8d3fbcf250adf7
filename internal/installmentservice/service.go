// Package installmentservice manages business logic layer of installments.
package installmentservice

import (
	"context"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/ownership"
)

// Repo provides data access layer interface needed by installment service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package installmentservice
type Repo interface {
	Create(ctx context.Context, arg domain.InstallmentParams) (domain.Installment, error)
	List(ctx context.Context, arg domain.ListInstallmentsParams) ([]domain.Installment, error)
	Get(ctx context.Context, userID, id int64) (domain.Installment, error)
	Update(ctx context.Context, userID, id int64, arg domain.InstallmentParams) (bool, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

// Service facilitates installment service layer logic.
type Service struct {
	repo       Repo
	authorizer ownership.Authorizer
}

// New returns installment service.
func New(r Repo, a ownership.Authorizer) *Service {
	return &Service{
		repo:       r,
		authorizer: a,
	}
}

// Create creates an installment on an account of the user.
func (s *Service) Create(ctx context.Context, userID int64, arg domain.InstallmentParams) (domain.Installment, error) {
	if _, err := s.authorizer.Authorize(ctx, userID, arg.AccountID); err != nil {
		return domain.Installment{}, err
	}

	return s.repo.Create(ctx, arg)
}

// List returns the user's installments.
func (s *Service) List(ctx context.Context, arg domain.ListInstallmentsParams) ([]domain.Installment, error) {
	return s.repo.List(ctx, arg)
}

// Get returns the user's installment with the given id.
func (s *Service) Get(ctx context.Context, userID, id int64) (domain.Installment, error) {
	return s.repo.Get(ctx, userID, id)
}

// Update replaces the fields of the user's installment.
func (s *Service) Update(ctx context.Context, userID, id int64, arg domain.InstallmentParams) error {
	if _, err := s.authorizer.Authorize(ctx, userID, arg.AccountID); err != nil {
		return err
	}

	ok, err := s.repo.Update(ctx, userID, id, arg)
	if err != nil {
		return err
	}

	if !ok {
		return domain.ErrInstallmentNotFound
	}

	return nil
}

// Delete removes the user's installment.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	ok, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}

	if !ok {
		return domain.ErrInstallmentNotFound
	}

	return nil
}
