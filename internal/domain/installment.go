package domain

import (
	"errors"
	"time"
)

// ErrInstallmentNotFound indicates that the installment is not found or is owned by another user.
var ErrInstallmentNotFound = errors.New("installment not found")

// Installment is a purchase paid off in equal periods.
type Installment struct {
	ID                int64     `json:"id"`
	AccountID         int64     `json:"account_id"`
	TotalAmount       string    `json:"total_amount"`
	InstallmentAmount string    `json:"installment_amount"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	Description       string    `json:"description"`
}

// InstallmentParams holds the mutable installment fields.
type InstallmentParams struct {
	AccountID         int64
	TotalAmount       string
	InstallmentAmount string
	StartDate         time.Time
	EndDate           time.Time
	Description       string
}

// ListInstallmentsParams is the input data to list the installments of a user.
//
// DateRange.From bounds start_date from below and DateRange.To bounds end_date from above.
type ListInstallmentsParams struct {
	UserID    int64
	AccountID int64
	Search    string
	DateRange
	Page
}
