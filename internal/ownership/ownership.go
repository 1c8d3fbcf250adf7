// Package ownership binds every record to a user through its account.
//
// A record owned by another user is reported exactly like a missing one, so the
// existence of other users' data is never observable.
package ownership

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/dbpkg"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
)

// Authorizer proves that an account belongs to a user.
//
//go:generate mockgen -source ownership.go -destination ownership_mock.go -package ownership
type Authorizer interface {
	Authorize(ctx context.Context, userID, accountID int64) (domain.Account, error)
}

// AccountOwnedBy restricts column, which holds an account id, to accounts of the user.
func AccountOwnedBy(column string, userID int64) sq.Sqlizer {
	return sq.Expr(column+" IN (SELECT id FROM accounts WHERE user_id = ?)", userID)
}

// PaymentOwnedBy restricts column, which holds a monthly payment id, to payments of the user.
func PaymentOwnedBy(column string, userID int64) sq.Sqlizer {
	return sq.Expr(column+` IN (
		SELECT mp.id FROM monthly_payments mp
		JOIN accounts a ON a.id = mp.account_id
		WHERE a.user_id = ?)`, userID)
}

// Checker authorizes accounts against the database.
type Checker struct {
	db dbpkg.SQLInterface
}

// NewChecker returns Checker.
func NewChecker(db dbpkg.SQLInterface) *Checker {
	return &Checker{db: db}
}

const authorizeQuery = `
SELECT id, user_id, name, type, balance, currency
FROM accounts
WHERE id = $1 AND user_id = $2
`

// Authorize returns the account if it belongs to the user and ErrAccountNotFound otherwise.
func (c *Checker) Authorize(ctx context.Context, userID, accountID int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var a domain.Account

	err := c.db.QueryRowContext(ctx, authorizeQuery, accountID, userID).Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.Type,
		&a.Balance,
		&a.Currency,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Int64("user_id", userID).Int64("account_id", accountID).Msg("account ownership check failed")
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}
