// Package notificationservice manages business logic layer of notifications.
package notificationservice

import (
	"context"
	"time"

	"github.com/go-petr/pet-finance/internal/domain"
)

// Repo provides data access layer interface needed by notification service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package notificationservice
type Repo interface {
	Create(ctx context.Context, userID int64, arg domain.CreateNotificationParams) (domain.Notification, error)
	List(ctx context.Context, userID int64, page domain.Page) ([]domain.Notification, error)
	ListDue(ctx context.Context, userID int64, from, to time.Time) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id int64) (bool, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

// Service facilitates notification service layer logic.
type Service struct {
	repo Repo
	now  func() time.Time
}

// New returns notification service.
func New(r Repo) *Service {
	return &Service{
		repo: r,
		now:  time.Now,
	}
}

// Create creates a notification about a monthly payment of the user.
//
// A zero NotifiedAt is set to the current time.
func (s *Service) Create(ctx context.Context, userID int64, arg domain.CreateNotificationParams) (domain.Notification, error) {
	if arg.NotifiedAt.IsZero() {
		arg.NotifiedAt = s.now().UTC()
	}

	return s.repo.Create(ctx, userID, arg)
}

// List returns the user's notifications.
func (s *Service) List(ctx context.Context, userID int64, page domain.Page) ([]domain.Notification, error) {
	return s.repo.List(ctx, userID, page)
}

// ListDue returns the user's notifications whose payment falls due within
// [today, today+days]. Today is the current UTC date.
func (s *Service) ListDue(ctx context.Context, userID int64, days int) ([]domain.Notification, error) {
	if days < 0 {
		return nil, domain.ErrNegativeDueDays
	}

	y, m, d := s.now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return s.repo.ListDue(ctx, userID, today, today.AddDate(0, 0, days))
}

// MarkRead flags the user's notification as read.
func (s *Service) MarkRead(ctx context.Context, userID, id int64) error {
	ok, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return err
	}

	if !ok {
		return domain.ErrNotificationNotFound
	}

	return nil
}

// Delete removes the user's notification.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	ok, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}

	if !ok {
		return domain.ErrNotificationNotFound
	}

	return nil
}
