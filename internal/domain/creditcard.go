package domain

import (
	"errors"
	"time"
)

// ErrCreditCardNotFound indicates that the credit card is not found or is owned by another user.
var ErrCreditCardNotFound = errors.New("credit card not found")

// CreditCard is a card attached to an account.
type CreditCard struct {
	ID          int64      `json:"id"`
	AccountID   int64      `json:"account_id"`
	CardNumber  string     `json:"card_number"`
	LimitAmount string     `json:"limit_amount"`
	Balance     string     `json:"balance"`
	DueDate     *time.Time `json:"due_date"`
}

// CreditCardParams holds the mutable credit card fields.
type CreditCardParams struct {
	AccountID   int64
	CardNumber  string
	LimitAmount string
	Balance     string
	DueDate     *time.Time
}

// ListCreditCardsParams is the input data to list the credit cards of a user.
type ListCreditCardsParams struct {
	UserID    int64
	AccountID int64
	Search    string
	Page
}
