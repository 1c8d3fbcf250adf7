package domain

import (
	"errors"
	"time"
)

var (
	// ErrMonthlyPaymentNotFound indicates that the monthly payment is not found or is owned by another user.
	ErrMonthlyPaymentNotFound = errors.New("monthly payment not found")
	// ErrMonthlyPaymentHasNotifications indicates that notifications still reference the monthly payment.
	ErrMonthlyPaymentHasNotifications = errors.New("monthly payment has notifications")
)

// MonthlyPayment is a recurring bill of an account.
type MonthlyPayment struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	Amount      string    `json:"amount"`
	DueDate     time.Time `json:"due_date"`
	Description string    `json:"description"`
}

// MonthlyPaymentParams holds the mutable monthly payment fields.
type MonthlyPaymentParams struct {
	AccountID   int64
	Amount      string
	DueDate     time.Time
	Description string
}

// ListMonthlyPaymentsParams is the input data to list the monthly payments of a user.
type ListMonthlyPaymentsParams struct {
	UserID    int64
	AccountID int64
	Search    string
	DateRange
	Page
}
