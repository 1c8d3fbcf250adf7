package domain

import (
	"errors"
	"time"
)

// ErrIncomeNotFound indicates that the income record is not found or is owned by another user.
var ErrIncomeNotFound = errors.New("income not found")

// Income is money coming into an account.
type Income struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	Amount    string    `json:"amount"`
	Date      time.Time `json:"date"`
	Source    string    `json:"source"`
}

// IncomeParams holds the mutable income fields.
type IncomeParams struct {
	AccountID int64
	Amount    string
	Date      time.Time
	Source    string
}

// ListIncomeParams is the input data to list the income records of a user.
type ListIncomeParams struct {
	UserID    int64
	AccountID int64
	Source    string
	Search    string
	DateRange
	Page
}
