package domain

import (
	"errors"
	"time"
)

// ErrTransactionNotFound indicates that the transaction is not found or is owned by another user.
var ErrTransactionNotFound = errors.New("transaction not found")

// Transaction is money going out of an account.
type Transaction struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	Amount      string    `json:"amount"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Currency    string    `json:"currency"`
}

// TransactionParams holds the mutable transaction fields.
type TransactionParams struct {
	AccountID   int64
	Amount      string
	Date        time.Time
	Description string
	Category    string
	Currency    string
}

// ListTransactionsParams is the input data to list the transactions of a user.
type ListTransactionsParams struct {
	UserID    int64
	AccountID int64
	Category  string
	Search    string
	DateRange
	Page
}

// DailyTotal is the sum of a user's transactions on one date.
type DailyTotal struct {
	Date   time.Time `json:"date"`
	Amount string    `json:"amount"`
}
