// Package creditcardservice manages business logic layer of credit cards.
package creditcardservice

import (
	"context"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/ownership"
)

// Repo provides data access layer interface needed by credit card service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package creditcardservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreditCardParams) (domain.CreditCard, error)
	List(ctx context.Context, arg domain.ListCreditCardsParams) ([]domain.CreditCard, error)
	Get(ctx context.Context, userID, id int64) (domain.CreditCard, error)
	Update(ctx context.Context, userID, id int64, arg domain.CreditCardParams) (bool, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

// Service facilitates credit card service layer logic.
type Service struct {
	repo       Repo
	authorizer ownership.Authorizer
}

// New returns credit card service.
func New(r Repo, a ownership.Authorizer) *Service {
	return &Service{
		repo:       r,
		authorizer: a,
	}
}

func withDefaults(arg domain.CreditCardParams) domain.CreditCardParams {
	if arg.LimitAmount == "" {
		arg.LimitAmount = "0.00"
	}

	if arg.Balance == "" {
		arg.Balance = "0.00"
	}

	return arg
}

// Create creates the credit card on an account of the user.
func (s *Service) Create(ctx context.Context, userID int64, arg domain.CreditCardParams) (domain.CreditCard, error) {
	if _, err := s.authorizer.Authorize(ctx, userID, arg.AccountID); err != nil {
		return domain.CreditCard{}, err
	}

	return s.repo.Create(ctx, withDefaults(arg))
}

// List returns the user's credit cards.
func (s *Service) List(ctx context.Context, arg domain.ListCreditCardsParams) ([]domain.CreditCard, error) {
	return s.repo.List(ctx, arg)
}

// Get returns the user's credit card with the given id.
func (s *Service) Get(ctx context.Context, userID, id int64) (domain.CreditCard, error) {
	return s.repo.Get(ctx, userID, id)
}

// Update replaces the fields of the user's credit card.
//
// The card may move to another account only if the user owns that account too.
func (s *Service) Update(ctx context.Context, userID, id int64, arg domain.CreditCardParams) error {
	if _, err := s.authorizer.Authorize(ctx, userID, arg.AccountID); err != nil {
		return err
	}

	ok, err := s.repo.Update(ctx, userID, id, withDefaults(arg))
	if err != nil {
		return err
	}

	if !ok {
		return domain.ErrCreditCardNotFound
	}

	return nil
}

// Delete removes the user's credit card.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	ok, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}

	if !ok {
		return domain.ErrCreditCardNotFound
	}

	return nil
}
