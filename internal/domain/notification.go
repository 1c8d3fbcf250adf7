package domain

import (
	"errors"
	"time"
)

var (
	// ErrNotificationNotFound indicates that the notification is not found or is owned by another user.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrNegativeDueDays indicates a due window that ends before today.
	ErrNegativeDueDays = errors.New("days must not be negative")
)

// DefaultDueDays is the due window used when the caller gives none.
const DefaultDueDays = 3

// Notification is a reminder about a monthly payment.
type Notification struct {
	ID               int64     `json:"id"`
	MonthlyPaymentID int64     `json:"monthly_payment_id"`
	Message          string    `json:"message"`
	NotifiedAt       time.Time `json:"notified_at"`
	IsRead           bool      `json:"is_read"`
}

// CreateNotificationParams is the input data to create a notification.
type CreateNotificationParams struct {
	MonthlyPaymentID int64
	Message          string
	NotifiedAt       time.Time
	IsRead           bool
}
