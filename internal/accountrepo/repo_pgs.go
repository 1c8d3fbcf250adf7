// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/dbpkg"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/go-petr/pet-finance/pkg/moneypkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns account RepoPGS running inside an already open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns account RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

var columns = []string{"id", "user_id", "name", "type", "balance", "currency"}

func scanAccount(row dbpkg.RowScanner) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.Type,
		&a.Balance,
		&a.Currency,
	)

	return a, err
}

const createQuery = `
INSERT INTO accounts (user_id, name, type, balance, currency)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, user_id, name, type, balance, currency
`

// Create creates the account of the user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, userID int64, arg domain.AccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, userID, arg.Name, arg.Type, arg.Balance, arg.Currency)

	a, err := scanAccount(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "accounts_user_id_fkey" {
			l.Info().Err(err).Send()
			return a, domain.ErrOwnerNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

// List returns the accounts of the user matching the filters, newest first.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListAccountsParams) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	q := dbpkg.Builder.
		Select(columns...).
		From("accounts").
		Where(sq.Eq{"user_id": arg.UserID})

	if arg.Type != "" {
		q = q.Where(sq.Eq{"type": arg.Type})
	}

	if arg.Search != "" {
		q = q.Where(dbpkg.SearchAny(arg.Search, "name", "type"))
	}

	query, args, err := q.OrderBy("id DESC").Limit(arg.Limit).Offset(arg.Offset).ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	items, err := dbpkg.CollectRows(rows, scanAccount)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const getQuery = `
SELECT id, user_id, name, type, balance, currency
FROM accounts
WHERE id = $1 AND user_id = $2
`

// Get returns the account with the given id if it belongs to the user.
func (r *RepoPGS) Get(ctx context.Context, userID, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getQuery, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const updateQuery = `
UPDATE accounts
SET name = $1, type = $2, balance = $3, currency = $4
WHERE id = $5 AND user_id = $6
`

// Update replaces the fields of the user's account and reports whether it existed.
func (r *RepoPGS) Update(ctx context.Context, userID, id int64, arg domain.AccountParams) (bool, error) {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, updateQuery, arg.Name, arg.Type, arg.Balance, arg.Currency, id, userID)
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	ok, err := dbpkg.Affected(res)
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return ok, nil
}

const deleteQuery = `
DELETE FROM accounts
WHERE id = $1 AND user_id = $2
`

// Delete removes the user's account and reports whether it existed.
//
// An account that still has child records is not removed.
func (r *RepoPGS) Delete(ctx context.Context, userID, id int64) (bool, error) {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id, userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			l.Info().Err(err).Send()
			return false, domain.ErrAccountHasDependents
		}

		l.Error().Err(err).Send()

		return false, errorspkg.ErrInternal
	}

	ok, err := dbpkg.Affected(res)
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return ok, nil
}

const lockQuery = `
SELECT id
FROM accounts
WHERE id = $1 AND user_id = $2
FOR UPDATE
`

const sumsQuery = `
SELECT
	(SELECT COALESCE(SUM(amount), 0) FROM income WHERE account_id = $1),
	(SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE account_id = $1)
`

const addCardBalancesQuery = `
UPDATE credit_cards
SET balance = balance + $1
WHERE account_id = $2
RETURNING id, balance
`

// Reconcile adds the account's net flow, income minus transactions, to the
// balance of each of its credit cards.
//
// The account row stays locked until the card balances are written, all
// within a single db transaction.
func (r *RepoPGS) Reconcile(ctx context.Context, userID, accountID int64) (domain.ReconcileResult, error) {
	var result domain.ReconcileResult

	err := r.inTx(ctx, func(txRepo *RepoPGS) error {
		var err error
		result, err = txRepo.reconcile(ctx, userID, accountID)

		return err
	})

	return result, err
}

func (r *RepoPGS) reconcile(ctx context.Context, userID, accountID int64) (domain.ReconcileResult, error) {
	l := zerolog.Ctx(ctx)

	var (
		result   domain.ReconcileResult
		lockedID int64
	)

	if err := r.db.QueryRowContext(ctx, lockQuery, accountID, userID).Scan(&lockedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return result, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return result, errorspkg.ErrInternal
	}

	var moneyIn, moneyOut decimal.Decimal

	if err := r.db.QueryRowContext(ctx, sumsQuery, accountID).Scan(&moneyIn, &moneyOut); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	net := moneyIn.Sub(moneyOut)

	rows, err := r.db.QueryContext(ctx, addCardBalancesQuery, moneypkg.Format(net), accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	type cardBalance struct {
		id      int64
		balance string
	}

	cards, err := dbpkg.CollectRows(rows, func(row dbpkg.RowScanner) (cardBalance, error) {
		var c cardBalance
		err := row.Scan(&c.id, &c.balance)

		return c, err
	})
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	result.UpdatedBalances = make(map[int64]string, len(cards))
	for _, c := range cards {
		result.UpdatedBalances[c.id] = c.balance
	}

	result.MoneyIn = moneypkg.Format(moneyIn)
	result.MoneyOut = moneypkg.Format(moneyOut)

	return result, nil
}

// inTx runs fn with a repo bound to a new transaction and commits it when fn succeeds.
//
// A repo built with NewTxRepoPGS is already inside a transaction and runs fn directly.
func (r *RepoPGS) inTx(ctx context.Context, fn func(txRepo *RepoPGS) error) error {
	if r.conn == nil {
		return fn(r)
	}

	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	if err := fn(NewTxRepoPGS(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}
