// Package domain provides definitions of all entities.
package domain

import "errors"

var (
	// ErrAccountNotFound indicates that the account is not found or is owned by another user.
	ErrAccountNotFound = errors.New("account not found")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrAccountHasDependents indicates that the account still has child records.
	ErrAccountHasDependents = errors.New("account has dependent records")
)

// Account groups the financial activity of one user.
type Account struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

// AccountParams holds the mutable account fields.
type AccountParams struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Balance  string `json:"balance"`
	Currency string `json:"currency"`
}

// ListAccountsParams is the input data to list the accounts of a user.
type ListAccountsParams struct {
	UserID int64
	Type   string
	Search string
	Page
}

// ReconcileResult is the outcome of applying an account's net flow to its credit cards.
type ReconcileResult struct {
	UpdatedBalances map[int64]string `json:"updated_balances"`
	MoneyIn         string           `json:"money_in"`
	MoneyOut        string           `json:"money_out"`
}
