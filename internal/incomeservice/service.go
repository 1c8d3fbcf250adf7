// Package incomeservice manages business logic layer of income records.
package incomeservice

import (
	"context"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/ownership"
)

// Repo provides data access layer interface needed by income service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package incomeservice
type Repo interface {
	Create(ctx context.Context, arg domain.IncomeParams) (domain.Income, error)
	List(ctx context.Context, arg domain.ListIncomeParams) ([]domain.Income, error)
	Get(ctx context.Context, userID, id int64) (domain.Income, error)
	Update(ctx context.Context, userID, id int64, arg domain.IncomeParams) (bool, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

// Service facilitates income service layer logic.
type Service struct {
	repo       Repo
	authorizer ownership.Authorizer
}

// New returns income service.
func New(r Repo, a ownership.Authorizer) *Service {
	return &Service{
		repo:       r,
		authorizer: a,
	}
}

// Create records income on an account of the user.
func (s *Service) Create(ctx context.Context, userID int64, arg domain.IncomeParams) (domain.Income, error) {
	if _, err := s.authorizer.Authorize(ctx, userID, arg.AccountID); err != nil {
		return domain.Income{}, err
	}

	return s.repo.Create(ctx, arg)
}

// List returns the user's income records.
func (s *Service) List(ctx context.Context, arg domain.ListIncomeParams) ([]domain.Income, error) {
	return s.repo.List(ctx, arg)
}

// Get returns the user's income record with the given id.
func (s *Service) Get(ctx context.Context, userID, id int64) (domain.Income, error) {
	return s.repo.Get(ctx, userID, id)
}

// Update replaces the fields of the user's income record.
func (s *Service) Update(ctx context.Context, userID, id int64, arg domain.IncomeParams) error {
	if _, err := s.authorizer.Authorize(ctx, userID, arg.AccountID); err != nil {
		return err
	}

	ok, err := s.repo.Update(ctx, userID, id, arg)
	if err != nil {
		return err
	}

	if !ok {
		return domain.ErrIncomeNotFound
	}

	return nil
}

// Delete removes the user's income record.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	ok, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}

	if !ok {
		return domain.ErrIncomeNotFound
	}

	return nil
}
